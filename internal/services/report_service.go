package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/models"
)

const joinInstrumentos = "JOIN instrumentos ON instrumentos.id = calificaciones.instrumento_id"

// reportService computes aggregates over instruments and ratings.
type reportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db, now: time.Now}
}

// groupCount is a scanned GROUP BY row.
type groupCount struct {
	Value string
	Count int64
}

// Report computes the full report. Per-market figures are three separate
// queries per market, kept simple on purpose: this is an internal screen.
func (s *reportService) Report() (*Report, error) {
	r := &Report{}
	var err error

	if err = s.db.Model(&models.Instrumento{}).Count(&r.TotalInstrumentos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err = s.db.Model(&models.Calificacion{}).Count(&r.TotalCalificaciones).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if r.InstrumentosPorTipo, err = s.countBy(&models.Instrumento{}, "tipo", func(v string) string { return models.TipoInstrumento(v).Label() }); err != nil {
		return nil, err
	}
	if r.InstrumentosPorEstado, err = s.countBy(&models.Instrumento{}, "estado", func(v string) string { return models.EstadoInstrumento(v).Label() }); err != nil {
		return nil, err
	}
	if r.InstrumentosPorMercado, err = s.countBy(&models.Instrumento{}, "mercado", func(v string) string { return models.Mercado(v).Label() }); err != nil {
		return nil, err
	}
	if r.CalificacionesPorTipo, err = s.countBy(&models.Calificacion{}, "tipo", func(v string) string { return models.TipoCalificacion(v).Label() }); err != nil {
		return nil, err
	}
	if r.CalificacionesPorEstado, err = s.countBy(&models.Calificacion{}, "estado", func(v string) string { return models.EstadoCalificacion(v).Label() }); err != nil {
		return nil, err
	}

	if r.MontoTotal, err = sumMonto(s.db.Model(&models.Calificacion{}), "monto"); err != nil {
		return nil, err
	}

	for _, choice := range models.Mercados {
		mercado := models.Mercado(choice.Value)
		mr := MarketReport{Mercado: mercado, Label: choice.Label}

		if err = s.db.Model(&models.Instrumento{}).Where("mercado = ?", mercado).Count(&mr.Instrumentos).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err = s.activasEn(mercado).Count(&mr.CalificacionesActivas).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if mr.MontoActivo, err = sumMonto(s.activasEn(mercado), "calificaciones.monto"); err != nil {
			return nil, err
		}
		r.PorMercado = append(r.PorMercado, mr)
	}

	return r, nil
}

// Dashboard counts instruments and ratings (any estado) per market.
func (s *reportService) Dashboard() (*DashboardSummary, error) {
	d := &DashboardSummary{GeneratedAt: s.now()}
	for _, choice := range models.Mercados {
		mc := MarketCount{Mercado: models.Mercado(choice.Value), Label: choice.Label}
		if err := s.db.Model(&models.Instrumento{}).Where("mercado = ?", mc.Mercado).Count(&mc.Instrumentos).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Model(&models.Calificacion{}).Joins(joinInstrumentos).
			Where("instrumentos.mercado = ?", mc.Mercado).
			Count(&mc.Calificaciones).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		d.Mercados = append(d.Mercados, mc)
	}
	return d, nil
}

// activasEn scopes active ratings whose instrument is in mercado.
func (s *reportService) activasEn(mercado models.Mercado) *gorm.DB {
	return s.db.Model(&models.Calificacion{}).Joins(joinInstrumentos).
		Where("instrumentos.mercado = ? AND calificaciones.estado = ?", mercado, models.CalificacionActiva)
}

// countBy groups model by column, ordered by the stored code.
func (s *reportService) countBy(model interface{}, column string, label func(string) string) ([]CountRow, error) {
	var groups []groupCount
	if err := s.db.Model(model).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	rows := make([]CountRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, CountRow{Value: g.Value, Label: label(g.Value), Count: g.Count})
	}
	return rows, nil
}

// sumMonto sums column over query, zero when no row has an amount.
func sumMonto(query *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := query.Select("COALESCE(SUM(" + column + "), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total.Round(2), nil
}
