package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"gorm.io/gorm"

	apperrors "nuam/internal/errors"
	"nuam/internal/logger"
	"nuam/internal/models"
)

// Exact header rows of the two CSV contracts.
var (
	InstrumentoHeaders  = []string{"codigo", "nombre", "tipo", "estado", "fecha_emision", "fecha_vencimiento"}
	CalificacionHeaders = []string{"codigo_instrumento", "tipo", "estado", "fecha", "monto"}
)

const utf8BOM = "\uFEFF"

// importService runs CSV bulk loads inside one transaction per call.
type importService struct {
	db *gorm.DB
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db}
}

// Import validates the header row and loads every row of r in a single
// transaction. Any row error rolls back the whole file.
func (s *importService) Import(kind ImportKind, r io.Reader, mercado models.Mercado) (*ImportResult, error) {
	switch kind {
	case ImportInstrumentos:
		if mercado == "" {
			return nil, apperrors.ErrMissingMercado
		}
		if !mercado.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrMissingMercado, "Mercado no reconocido.")
		}
	case ImportCalificaciones:
	default:
		return nil, apperrors.ErrUnknownImportKind
	}
	if r == nil {
		return nil, apperrors.ErrMissingFile
	}

	records, err := readCSV(r)
	if err != nil {
		logger.Get().Warnw("unreadable import file", "kind", kind, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrFileProcessing, err)
	}

	var processed int
	switch kind {
	case ImportInstrumentos:
		if len(records) == 0 || !slices.Equal(records[0], InstrumentoHeaders) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidHeaders, "Encabezados inválidos para instrumentos.")
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			processed, err = importInstrumentos(tx, records[1:], mercado)
			return err
		})
	case ImportCalificaciones:
		if len(records) == 0 || !slices.Equal(records[0], CalificacionHeaders) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidHeaders, "Encabezados inválidos para calificaciones.")
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			processed, err = importCalificaciones(tx, records[1:])
			return err
		})
	}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &ImportResult{Kind: kind, Processed: processed}
	if kind == ImportInstrumentos {
		result.Message = fmt.Sprintf("Instrumentos procesados correctamente: %d", processed)
	} else {
		result.Message = fmt.Sprintf("Calificaciones procesadas correctamente: %d", processed)
	}
	logger.Get().Infow("import completed", "kind", kind, "mercado", mercado, "processed", processed)
	return result, nil
}

// readCSV decodes the upload as UTF-8, dropping a leading BOM. Payloads that
// are not valid UTF-8 are decoded once as Latin-1.
func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte(utf8BOM))
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding latin-1: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return records, nil
}

// cell returns the trimmed i-th field, or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// rowError reports a bad row; line numbers count the header as line 1.
func rowError(index int, format string, args ...any) error {
	return apperrors.WithMessage(apperrors.ErrInvalidRow,
		fmt.Sprintf("Fila %d: %s", index+2, fmt.Sprintf(format, args...)))
}

// importInstrumentos upserts by codigo. Rows with a blank codigo are skipped.
func importInstrumentos(tx *gorm.DB, rows [][]string, mercado models.Mercado) (int, error) {
	processed := 0
	for i, row := range rows {
		codigo := cell(row, 0)
		if codigo == "" {
			continue
		}

		tipo, ok := models.ParseTipoInstrumento(cell(row, 2))
		if !ok {
			return 0, rowError(i, "tipo %q no reconocido.", cell(row, 2))
		}
		estado := models.InstrumentoActivo
		if raw := cell(row, 3); raw != "" {
			if estado, ok = models.ParseEstadoInstrumento(raw); !ok {
				return 0, rowError(i, "estado %q no reconocido.", raw)
			}
		}
		emision, err := models.ParseFecha(cell(row, 4))
		if err != nil {
			return 0, rowError(i, "%v", err)
		}
		vencimiento, err := models.ParseFecha(cell(row, 5))
		if err != nil {
			return 0, rowError(i, "%v", err)
		}

		var inst models.Instrumento
		err = tx.Where("codigo = ?", codigo).First(&inst).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		inst.Codigo = codigo
		inst.Nombre = cell(row, 1)
		inst.Tipo = tipo
		inst.Mercado = mercado
		inst.Estado = estado
		inst.FechaEmision = emision
		inst.FechaVencimiento = vencimiento

		if inst.ID == 0 {
			err = tx.Create(&inst).Error
		} else {
			err = tx.Model(&inst).Select(instrumentoUpdatable).Updates(&inst).Error
		}
		if err != nil {
			return 0, err
		}
		processed++
	}
	return processed, nil
}

// importCalificaciones always inserts. An unknown instrument code aborts the import.
func importCalificaciones(tx *gorm.DB, rows [][]string) (int, error) {
	ids := make(map[string]uint)
	processed := 0
	for i, row := range rows {
		codigo := cell(row, 0)
		if codigo == "" {
			continue
		}

		instrumentoID, ok := ids[codigo]
		if !ok {
			var inst models.Instrumento
			if err := tx.Select("id").Where("codigo = ?", codigo).First(&inst).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return 0, apperrors.WithMessage(apperrors.ErrUnknownInstrumento,
						fmt.Sprintf("Fila %d: el instrumento %q no existe.", i+2, codigo))
				}
				return 0, err
			}
			instrumentoID = inst.ID
			ids[codigo] = instrumentoID
		}

		tipo, ok := models.ParseTipoCalificacion(cell(row, 1))
		if !ok {
			return 0, rowError(i, "tipo %q no reconocido.", cell(row, 1))
		}
		estado := models.CalificacionActiva
		if raw := cell(row, 2); raw != "" {
			if estado, ok = models.ParseEstadoCalificacion(raw); !ok {
				return 0, rowError(i, "estado %q no reconocido.", raw)
			}
		}
		fecha, err := models.ParseFecha(cell(row, 3))
		if err != nil {
			return 0, rowError(i, "%v", err)
		}
		if fecha == nil {
			return 0, rowError(i, "la fecha es obligatoria.")
		}
		monto, err := models.ParseMonto(cell(row, 4))
		if err != nil {
			return 0, rowError(i, "%v", err)
		}

		cal := models.Calificacion{
			InstrumentoID: instrumentoID,
			Tipo:          tipo,
			Estado:        estado,
			Fecha:         *fecha,
			Monto:         monto,
		}
		if err := tx.Create(&cal).Error; err != nil {
			return 0, err
		}
		processed++
	}
	return processed, nil
}
