package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"nuam/internal/marketdata"
	"nuam/internal/models"
	"nuam/internal/pagination"
)

// SignupInput is a new account request. Every field except the names is required.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(input SignupInput) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.Page[models.User], error)
}

// ColaboradorInput attaches a staff profile to an existing user.
type ColaboradorInput struct {
	UserID      uint
	Nombre      string
	Apellido    string
	RutDNI      string
	Cargo       string
	NivelAcceso string
}

// ColaboradorServicer defines the contract for staff profiles.
type ColaboradorServicer interface {
	CreateColaborador(input ColaboradorInput) (*models.Colaborador, error)
	GetColaboradorByUserID(userID uint) (*models.Colaborador, error)
}

// InstrumentoInput holds the writable fields of an instrument.
type InstrumentoInput struct {
	Codigo           string
	Nombre           string
	Tipo             models.TipoInstrumento
	Mercado          models.Mercado
	Estado           models.EstadoInstrumento
	FechaEmision     *time.Time
	FechaVencimiento *time.Time
}

// InstrumentoFilter holds optional listing filters; zero values do not restrict.
type InstrumentoFilter struct {
	Q       string
	Tipo    string
	Mercado string
	Estado  string
}

// InstrumentoServicer defines the contract for instrument-related business logic.
type InstrumentoServicer interface {
	CreateInstrumento(input InstrumentoInput) (*models.Instrumento, error)
	GetInstrumentoByID(id uint) (*models.Instrumento, error)
	ListInstrumentos(filter InstrumentoFilter) ([]models.Instrumento, error)
	UpdateInstrumento(id uint, input InstrumentoInput) (*models.Instrumento, error)
	DeleteInstrumento(id uint) error
}

// CalificacionInput holds the writable fields of a rating.
type CalificacionInput struct {
	InstrumentoID uint
	Tipo          models.TipoCalificacion
	Estado        models.EstadoCalificacion
	Fecha         time.Time
	Monto         decimal.NullDecimal
}

// CalificacionFilter holds optional listing filters. Codigo accepts "CAL-12"
// or "12"; anything non-numeric is ignored. The date range is inclusive.
type CalificacionFilter struct {
	Codigo     string
	Tipo       string
	Estado     string
	FechaDesde *time.Time
	FechaHasta *time.Time
}

// CalificacionServicer defines the contract for rating-related business logic.
type CalificacionServicer interface {
	CreateCalificacion(input CalificacionInput) (*models.Calificacion, error)
	GetCalificacionByID(id uint) (*models.Calificacion, error)
	ListCalificaciones(filter CalificacionFilter) ([]models.Calificacion, error)
	UpdateCalificacion(id uint, input CalificacionInput) (*models.Calificacion, error)
	DeleteCalificacion(id uint) error
}

// ImportKind selects the CSV contract of a bulk import.
type ImportKind string

const (
	ImportInstrumentos   ImportKind = "INSTRUMENTOS"
	ImportCalificaciones ImportKind = "CALIFICACIONES"
)

// ImportResult reports a successful import.
type ImportResult struct {
	Kind      ImportKind
	Processed int
	Message   string
}

// ImportServicer runs CSV bulk imports. mercado is required for instruments
// and ignored for ratings.
type ImportServicer interface {
	Import(kind ImportKind, r io.Reader, mercado models.Mercado) (*ImportResult, error)
}

// ExportServicer writes table contents as CSV.
type ExportServicer interface {
	ExportInstrumentos(w io.Writer) error
	ExportCalificaciones(w io.Writer) error
}

// CountRow is one group of a grouped count.
type CountRow struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MarketReport is the per-market section of the report. Only active ratings
// are counted and summed.
type MarketReport struct {
	Mercado               models.Mercado  `json:"mercado"`
	Label                 string          `json:"label"`
	Instrumentos          int64           `json:"instrumentos"`
	CalificacionesActivas int64           `json:"calificaciones_activas"`
	MontoActivo           decimal.Decimal `json:"monto_activo"`
}

// Report is the aggregate view of the registry.
type Report struct {
	TotalInstrumentos       int64           `json:"total_instrumentos"`
	TotalCalificaciones     int64           `json:"total_calificaciones"`
	InstrumentosPorTipo     []CountRow      `json:"instrumentos_por_tipo"`
	InstrumentosPorEstado   []CountRow      `json:"instrumentos_por_estado"`
	InstrumentosPorMercado  []CountRow      `json:"instrumentos_por_mercado"`
	CalificacionesPorTipo   []CountRow      `json:"calificaciones_por_tipo"`
	CalificacionesPorEstado []CountRow      `json:"calificaciones_por_estado"`
	MontoTotal              decimal.Decimal `json:"monto_total"`
	PorMercado              []MarketReport  `json:"por_mercado"`
}

// MarketCount is a dashboard counter pair for one market.
type MarketCount struct {
	Mercado        models.Mercado `json:"mercado"`
	Label          string         `json:"label"`
	Instrumentos   int64          `json:"instrumentos"`
	Calificaciones int64          `json:"calificaciones"`
}

// DashboardSummary holds the dashboard counters.
type DashboardSummary struct {
	Mercados    []MarketCount `json:"mercados"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ReportServicer computes aggregates over the current table state.
type ReportServicer interface {
	Report() (*Report, error)
	Dashboard() (*DashboardSummary, error)
}

// MarketServicer returns live market snapshots. It never fails; markets
// without data carry nil figures.
type MarketServicer interface {
	Snapshots(ctx context.Context) []marketdata.Snapshot
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
	Recent(limit int) ([]models.AuditLog, error)
}
