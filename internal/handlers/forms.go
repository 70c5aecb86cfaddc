package handlers

import (
	"time"

	"nuam/internal/models"
	"nuam/internal/services"
)

// LoginForm is the login submission.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// SignupForm is the account creation submission.
type SignupForm struct {
	Username        string `form:"username" binding:"required,max=150"`
	Email           string `form:"email" binding:"required,email,max=254"`
	FirstName       string `form:"first_name" binding:"max=150"`
	LastName        string `form:"last_name" binding:"max=150"`
	Password        string `form:"password1" binding:"required,max=128"`
	PasswordConfirm string `form:"password2" binding:"required,eqfield=Password"`
}

func (f SignupForm) input() services.SignupInput {
	return services.SignupInput{
		Username:        f.Username,
		Email:           f.Email,
		Password:        f.Password,
		PasswordConfirm: f.PasswordConfirm,
		FirstName:       f.FirstName,
		LastName:        f.LastName,
	}
}

// InstrumentoForm is the create/edit instrument submission. Dates are ISO strings.
type InstrumentoForm struct {
	Codigo           string `form:"codigo" binding:"required,max=50"`
	Nombre           string `form:"nombre" binding:"required,max=255"`
	Tipo             string `form:"tipo" binding:"required,tipo_instrumento"`
	Mercado          string `form:"mercado" binding:"required,mercado"`
	Estado           string `form:"estado" binding:"required,estado_instrumento"`
	FechaEmision     string `form:"fecha_emision" binding:"omitempty,fecha"`
	FechaVencimiento string `form:"fecha_vencimiento" binding:"omitempty,fecha"`
}

func newInstrumentoForm(inst *models.Instrumento) InstrumentoForm {
	return InstrumentoForm{
		Codigo:           inst.Codigo,
		Nombre:           inst.Nombre,
		Tipo:             string(inst.Tipo),
		Mercado:          string(inst.Mercado),
		Estado:           string(inst.Estado),
		FechaEmision:     models.FormatFecha(inst.FechaEmision),
		FechaVencimiento: models.FormatFecha(inst.FechaVencimiento),
	}
}

// input converts a bound form. Dates were checked by the fecha validator.
func (f InstrumentoForm) input() services.InstrumentoInput {
	emision, _ := models.ParseFecha(f.FechaEmision)
	vencimiento, _ := models.ParseFecha(f.FechaVencimiento)
	return services.InstrumentoInput{
		Codigo:           f.Codigo,
		Nombre:           f.Nombre,
		Tipo:             models.TipoInstrumento(f.Tipo),
		Mercado:          models.Mercado(f.Mercado),
		Estado:           models.EstadoInstrumento(f.Estado),
		FechaEmision:     emision,
		FechaVencimiento: vencimiento,
	}
}

// CalificacionForm is the create/edit rating submission.
type CalificacionForm struct {
	InstrumentoID uint   `form:"instrumento" binding:"required"`
	Tipo          string `form:"tipo" binding:"required,tipo_calificacion"`
	Estado        string `form:"estado" binding:"required,estado_calificacion"`
	Fecha         string `form:"fecha" binding:"required,fecha"`
	Monto         string `form:"monto" binding:"omitempty,monto"`
}

func newCalificacionForm(cal *models.Calificacion) CalificacionForm {
	return CalificacionForm{
		InstrumentoID: cal.InstrumentoID,
		Tipo:          string(cal.Tipo),
		Estado:        string(cal.Estado),
		Fecha:         cal.Fecha.Format(models.DateLayout),
		Monto:         models.FormatMonto(cal.Monto),
	}
}

func (f CalificacionForm) input() services.CalificacionInput {
	in := services.CalificacionInput{
		InstrumentoID: f.InstrumentoID,
		Tipo:          models.TipoCalificacion(f.Tipo),
		Estado:        models.EstadoCalificacion(f.Estado),
	}
	if fecha, _ := models.ParseFecha(f.Fecha); fecha != nil {
		in.Fecha = *fecha
	}
	in.Monto, _ = models.ParseMonto(f.Monto)
	return in
}

// ColaboradorForm attaches a staff profile to a user from the admin page.
type ColaboradorForm struct {
	UserID      uint   `form:"user_id" binding:"required"`
	Nombre      string `form:"nombre" binding:"required,max=100"`
	Apellido    string `form:"apellido" binding:"required,max=100"`
	RutDNI      string `form:"rut_dni" binding:"required,max=20"`
	Cargo       string `form:"cargo" binding:"required,max=100"`
	NivelAcceso string `form:"nivel_acceso" binding:"required,max=50"`
}

func (f ColaboradorForm) input() services.ColaboradorInput {
	return services.ColaboradorInput{
		UserID:      f.UserID,
		Nombre:      f.Nombre,
		Apellido:    f.Apellido,
		RutDNI:      f.RutDNI,
		Cargo:       f.Cargo,
		NivelAcceso: f.NivelAcceso,
	}
}

// CargaForm is the bulk upload submission; the file travels as "archivo".
type CargaForm struct {
	Tipo    string `form:"tipo"`
	Mercado string `form:"mercado"`
}

// InstrumentoQuery holds the optional instrument listing filters.
type InstrumentoQuery struct {
	Q       string `form:"q"`
	Tipo    string `form:"tipo"`
	Mercado string `form:"mercado"`
	Estado  string `form:"estado"`
}

func (q InstrumentoQuery) filter() services.InstrumentoFilter {
	return services.InstrumentoFilter{Q: q.Q, Tipo: q.Tipo, Mercado: q.Mercado, Estado: q.Estado}
}

// CalificacionQuery holds the optional rating listing filters. Malformed
// dates are ignored.
type CalificacionQuery struct {
	Codigo     string `form:"codigo"`
	Tipo       string `form:"tipo"`
	Estado     string `form:"estado"`
	FechaDesde string `form:"fecha_desde"`
	FechaHasta string `form:"fecha_hasta"`
}

func (q CalificacionQuery) filter() services.CalificacionFilter {
	return services.CalificacionFilter{
		Codigo:     q.Codigo,
		Tipo:       q.Tipo,
		Estado:     q.Estado,
		FechaDesde: optionalDate(q.FechaDesde),
		FechaHasta: optionalDate(q.FechaHasta),
	}
}

func optionalDate(s string) *time.Time {
	t, err := models.ParseFecha(s)
	if err != nil {
		return nil
	}
	return t
}
