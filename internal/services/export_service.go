package services

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/models"
)

// Export header rows.
var (
	InstrumentoExportHeaders  = []string{"Código", "Nombre", "Tipo", "Mercado", "Estado", "Fecha Emisión", "Fecha Vencimiento"}
	CalificacionExportHeaders = []string{"Código Calificación", "Código Instrumento", "Tipo", "Estado", "Fecha", "Monto"}
)

// exportService streams tables as CSV, row by row from the cursor.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// calificacionExportRow is a rating joined with its instrument code.
type calificacionExportRow struct {
	ID                uint
	Tipo              models.TipoCalificacion
	Estado            models.EstadoCalificacion
	Fecha             time.Time
	Monto             decimal.NullDecimal
	InstrumentoCodigo string
}

// ExportInstrumentos writes every instrument ordered by codigo, with labels
// in place of stored codes.
func (s *exportService) ExportInstrumentos(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(InstrumentoExportHeaders); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows, err := s.db.Model(&models.Instrumento{}).Order("codigo ASC").Rows()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var inst models.Instrumento
		if err := s.db.ScanRows(rows, &inst); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		record := []string{
			inst.Codigo,
			inst.Nombre,
			inst.Tipo.Label(),
			inst.Mercado.Label(),
			inst.Estado.Label(),
			models.FormatFecha(inst.FechaEmision),
			models.FormatFecha(inst.FechaVencimiento),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExportCalificaciones writes every rating, newest first. Monto is empty when unset.
func (s *exportService) ExportCalificaciones(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CalificacionExportHeaders); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows, err := s.db.Table("calificaciones").
		Select("calificaciones.id, calificaciones.tipo, calificaciones.estado, calificaciones.fecha, calificaciones.monto, instrumentos.codigo AS instrumento_codigo").
		Joins("JOIN instrumentos ON instrumentos.id = calificaciones.instrumento_id").
		Order("calificaciones.fecha DESC, calificaciones.id DESC").
		Rows()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var row calificacionExportRow
		if err := s.db.ScanRows(rows, &row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		cal := models.Calificacion{Base: models.Base{ID: row.ID}}
		record := []string{
			cal.Codigo(),
			row.InstrumentoCodigo,
			row.Tipo.Label(),
			row.Estado.Label(),
			row.Fecha.Format(models.DateLayout),
			models.FormatMonto(row.Monto),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
