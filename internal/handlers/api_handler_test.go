package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nuam/internal/marketdata"
	"nuam/internal/middleware"
	"nuam/internal/models"
	"nuam/internal/services"
)

const testAPIKey = "clave-de-prueba"

func setupAPIRouter(inst *mockInstrumentoService, reports *mockReportService, market *mockMarketService) *gin.Engine {
	handler := NewAPIHandler(inst, reports, market)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.ErrorHandler())
	api.GET("/health", handler.Health)
	v1 := api.Group("/v1")
	v1.Use(middleware.APIKeyAuth(testAPIKey))
	v1.GET("/instrumentos", handler.ListInstrumentos)
	v1.GET("/reportes", handler.Report)
	v1.GET("/mercados", handler.Markets)
	return r
}

func doAPIRequest(r *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestAPIHandler_Health(t *testing.T) {
	r := setupAPIRouter(&mockInstrumentoService{}, &mockReportService{}, &mockMarketService{})

	rec := doAPIRequest(r, "/api/health", "")

	assertStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["status"] != "ok" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestAPIHandler_ListInstrumentos(t *testing.T) {
	emision := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var got services.InstrumentoFilter
	inst := &mockInstrumentoService{
		listFn: func(filter services.InstrumentoFilter) ([]models.Instrumento, error) {
			got = filter
			return []models.Instrumento{
				{Base: models.Base{ID: 1}, Codigo: "BONO-CL-01", Nombre: "Bono", Tipo: models.TipoBono, Mercado: models.MercadoChile, Estado: models.InstrumentoActivo, FechaEmision: &emision},
			}, nil
		},
	}
	r := setupAPIRouter(inst, &mockReportService{}, &mockMarketService{})

	t.Run("requires the API key", func(t *testing.T) {
		rec := doAPIRequest(r, "/api/v1/instrumentos", "")
		assertStatus(t, rec, http.StatusUnauthorized)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_API_KEY")

		rec = doAPIRequest(r, "/api/v1/instrumentos", "otra")
		assertStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("lists with filters", func(t *testing.T) {
		rec := doAPIRequest(r, "/api/v1/instrumentos?mercado=CL&tipo=BONO", testAPIKey)

		assertStatus(t, rec, http.StatusOK)
		result := parseJSON(t, rec)
		if result["total"] != float64(1) {
			t.Errorf("expected total 1, got %v", result["total"])
		}
		data := result["data"].([]interface{})
		first := data[0].(map[string]interface{})
		if first["codigo"] != "BONO-CL-01" || first["mercado"] != "CL" || first["fecha_emision"] != "2024-01-15" {
			t.Errorf("unexpected instrument %v", first)
		}
		if _, ok := first["fecha_vencimiento"]; ok {
			t.Errorf("expected fecha_vencimiento to be omitted, got %v", first)
		}
		if got.Mercado != "CL" || got.Tipo != "BONO" {
			t.Errorf("unexpected filter %+v", got)
		}
	})

	t.Run("service failure is a JSON 500", func(t *testing.T) {
		failing := &mockInstrumentoService{
			listFn: func(services.InstrumentoFilter) ([]models.Instrumento, error) {
				return nil, errors.New("db down")
			},
		}
		r := setupAPIRouter(failing, &mockReportService{}, &mockMarketService{})

		rec := doAPIRequest(r, "/api/v1/instrumentos", testAPIKey)

		assertStatus(t, rec, http.StatusInternalServerError)
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestAPIHandler_Report(t *testing.T) {
	reports := &mockReportService{
		reportFn: func() (*services.Report, error) {
			return &services.Report{TotalInstrumentos: 4, MontoTotal: decimal.RequireFromString("12.5")}, nil
		},
	}
	r := setupAPIRouter(&mockInstrumentoService{}, reports, &mockMarketService{})

	rec := doAPIRequest(r, "/api/v1/reportes", testAPIKey)

	assertStatus(t, rec, http.StatusOK)
	result := parseJSON(t, rec)
	if result["total_instrumentos"] != float64(4) || result["monto_total"] != "12.5" {
		t.Errorf("unexpected report %v", result)
	}
}

func TestAPIHandler_Markets(t *testing.T) {
	price := 101.5
	market := &mockMarketService{snapshots: []marketdata.Snapshot{
		{Code: "CL", Name: "Chile", Price: &price, Trend: marketdata.TrendFlat},
		{Code: "PE", Name: "Perú", Trend: marketdata.TrendUnknown},
	}}
	r := setupAPIRouter(&mockInstrumentoService{}, &mockReportService{}, market)

	rec := doAPIRequest(r, "/api/v1/mercados", testAPIKey)

	assertStatus(t, rec, http.StatusOK)
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(data))
	}
	cl := data[0].(map[string]interface{})
	pe := data[1].(map[string]interface{})
	if cl["price"] != 101.5 || cl["trend"] != "flat" {
		t.Errorf("unexpected CL snapshot %v", cl)
	}
	if pe["price"] != nil || pe["variation"] != nil {
		t.Errorf("expected null figures for PE, got %v", pe)
	}
}

func TestAPIHandler_NotConfigured(t *testing.T) {
	handler := NewAPIHandler(&mockInstrumentoService{}, &mockReportService{}, &mockMarketService{})
	r := gin.New()
	r.GET("/api/v1/reportes", middleware.APIKeyAuth(""), handler.Report)

	rec := doAPIRequest(r, "/api/v1/reportes", "anything")

	assertStatus(t, rec, http.StatusServiceUnavailable)
	assertErrorCode(t, parseJSON(t, rec), "API_NOT_CONFIGURED")
}
