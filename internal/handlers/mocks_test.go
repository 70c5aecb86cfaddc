package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nuam/internal/logger"
	"nuam/internal/marketdata"
	"nuam/internal/models"
	"nuam/internal/pagination"
	"nuam/internal/services"
	"nuam/internal/session"
	"nuam/internal/validator"
	"nuam/internal/web"
)

// --- mock services ---

type mockUserService struct {
	registerFn     func(input services.SignupInput) (*models.User, error)
	authenticateFn func(username, password string) (*models.User, error)
	getUserByIDFn  func(id uint) (*models.User, error)
	listUsersFn    func(page pagination.PageRequest) (*pagination.Page[models.User], error)
}

func (m *mockUserService) Register(input services.SignupInput) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(input)
	}
	return &models.User{Base: models.Base{ID: 1}, Username: input.Username}, nil
}

func (m *mockUserService) Authenticate(username, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(username, password)
	}
	return &models.User{Base: models.Base{ID: 1}, Username: username}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) ListUsers(page pagination.PageRequest) (*pagination.Page[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	page.Defaults()
	result := pagination.NewPage([]models.User{}, page, 0)
	return &result, nil
}

type mockColaboradorService struct {
	createFn    func(input services.ColaboradorInput) (*models.Colaborador, error)
	getByUserFn func(userID uint) (*models.Colaborador, error)
}

func (m *mockColaboradorService) CreateColaborador(input services.ColaboradorInput) (*models.Colaborador, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Colaborador{Base: models.Base{ID: 1}, UserID: input.UserID}, nil
}

func (m *mockColaboradorService) GetColaboradorByUserID(userID uint) (*models.Colaborador, error) {
	if m.getByUserFn != nil {
		return m.getByUserFn(userID)
	}
	return &models.Colaborador{UserID: userID}, nil
}

type mockInstrumentoService struct {
	createFn func(input services.InstrumentoInput) (*models.Instrumento, error)
	getFn    func(id uint) (*models.Instrumento, error)
	listFn   func(filter services.InstrumentoFilter) ([]models.Instrumento, error)
	updateFn func(id uint, input services.InstrumentoInput) (*models.Instrumento, error)
	deleteFn func(id uint) error
}

func (m *mockInstrumentoService) CreateInstrumento(input services.InstrumentoInput) (*models.Instrumento, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Instrumento{Base: models.Base{ID: 1}, Codigo: input.Codigo}, nil
}

func (m *mockInstrumentoService) GetInstrumentoByID(id uint) (*models.Instrumento, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Instrumento{Base: models.Base{ID: id}, Codigo: "BONO-1"}, nil
}

func (m *mockInstrumentoService) ListInstrumentos(filter services.InstrumentoFilter) ([]models.Instrumento, error) {
	if m.listFn != nil {
		return m.listFn(filter)
	}
	return nil, nil
}

func (m *mockInstrumentoService) UpdateInstrumento(id uint, input services.InstrumentoInput) (*models.Instrumento, error) {
	if m.updateFn != nil {
		return m.updateFn(id, input)
	}
	return &models.Instrumento{Base: models.Base{ID: id}, Codigo: input.Codigo}, nil
}

func (m *mockInstrumentoService) DeleteInstrumento(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockCalificacionService struct {
	createFn func(input services.CalificacionInput) (*models.Calificacion, error)
	getFn    func(id uint) (*models.Calificacion, error)
	listFn   func(filter services.CalificacionFilter) ([]models.Calificacion, error)
	updateFn func(id uint, input services.CalificacionInput) (*models.Calificacion, error)
	deleteFn func(id uint) error
}

func (m *mockCalificacionService) CreateCalificacion(input services.CalificacionInput) (*models.Calificacion, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &models.Calificacion{Base: models.Base{ID: 1}, InstrumentoID: input.InstrumentoID}, nil
}

func (m *mockCalificacionService) GetCalificacionByID(id uint) (*models.Calificacion, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Calificacion{Base: models.Base{ID: id}}, nil
}

func (m *mockCalificacionService) ListCalificaciones(filter services.CalificacionFilter) ([]models.Calificacion, error) {
	if m.listFn != nil {
		return m.listFn(filter)
	}
	return nil, nil
}

func (m *mockCalificacionService) UpdateCalificacion(id uint, input services.CalificacionInput) (*models.Calificacion, error) {
	if m.updateFn != nil {
		return m.updateFn(id, input)
	}
	return &models.Calificacion{Base: models.Base{ID: id}}, nil
}

func (m *mockCalificacionService) DeleteCalificacion(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockImportService struct {
	importFn func(kind services.ImportKind, r io.Reader, mercado models.Mercado) (*services.ImportResult, error)
}

func (m *mockImportService) Import(kind services.ImportKind, r io.Reader, mercado models.Mercado) (*services.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(kind, r, mercado)
	}
	return &services.ImportResult{Kind: kind}, nil
}

type mockExportService struct {
	instrumentosFn   func(w io.Writer) error
	calificacionesFn func(w io.Writer) error
}

func (m *mockExportService) ExportInstrumentos(w io.Writer) error {
	if m.instrumentosFn != nil {
		return m.instrumentosFn(w)
	}
	return nil
}

func (m *mockExportService) ExportCalificaciones(w io.Writer) error {
	if m.calificacionesFn != nil {
		return m.calificacionesFn(w)
	}
	return nil
}

type mockReportService struct {
	reportFn    func() (*services.Report, error)
	dashboardFn func() (*services.DashboardSummary, error)
}

func (m *mockReportService) Report() (*services.Report, error) {
	if m.reportFn != nil {
		return m.reportFn()
	}
	return &services.Report{}, nil
}

func (m *mockReportService) Dashboard() (*services.DashboardSummary, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn()
	}
	return &services.DashboardSummary{}, nil
}

type mockMarketService struct {
	snapshots []marketdata.Snapshot
}

func (m *mockMarketService) Snapshots(_ context.Context) []marketdata.Snapshot {
	return m.snapshots
}

// auditEntry is one recorded call to mockAuditService.Log.
type auditEntry struct {
	UserID     uint
	Action     string
	ResourceID uint
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID uint, action, _ string, resourceID uint, _ string, _ map[string]any) {
	m.entries = append(m.entries, auditEntry{UserID: userID, Action: action, ResourceID: resourceID})
}

func (m *mockAuditService) Recent(_ int) ([]models.AuditLog, error) {
	return nil, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// newTestRouter returns an engine with the page templates loaded.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	return r
}

// loggedIn injects an identity as the session middleware would.
func loggedIn(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.Identity{UserID: uid, Username: "analista"}
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, status int, location string) {
	t.Helper()
	assertStatus(t, rec, status)
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected Location %q, got %q", location, got)
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected body to contain %q\nbody: %s", want, rec.Body.String())
	}
}

// findCookie returns the named Set-Cookie of the response, or nil.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
