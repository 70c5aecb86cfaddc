// Package server assembles the Gin engine: templates, middleware and routes.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "nuam/internal/docs" // swagger spec
	"nuam/internal/handlers"
	"nuam/internal/marketdata"
	"nuam/internal/middleware"
	"nuam/internal/services"
	"nuam/internal/web"
)

// Services groups everything the handlers depend on.
type Services struct {
	Users          services.UserServicer
	Colaboradores  services.ColaboradorServicer
	Instrumentos   services.InstrumentoServicer
	Calificaciones services.CalificacionServicer
	Imports        services.ImportServicer
	Exports        services.ExportServicer
	Reports        services.ReportServicer
	Market         services.MarketServicer
	Audit          services.AuditServicer
}

// NewServices builds the database-backed services and the market service
// over provider.
func NewServices(db *gorm.DB, provider marketdata.ChartProvider, markets []marketdata.Market, historyDays int) Services {
	return Services{
		Users:          services.NewUserService(db),
		Colaboradores:  services.NewColaboradorService(db),
		Instrumentos:   services.NewInstrumentoService(db),
		Calificaciones: services.NewCalificacionService(db),
		Imports:        services.NewImportService(db),
		Exports:        services.NewExportService(db),
		Reports:        services.NewReportService(db),
		Market:         services.NewMarketService(provider, markets, historyDays),
		Audit:          services.NewAuditService(db),
	}
}

// Options configures the router.
type Options struct {
	Sessions *middleware.SessionManager
	// APIKey protects /api/v1; empty disables it.
	APIKey string
}

// NewRouter returns the engine serving the HTML application, the JSON API
// and the Swagger UI.
func NewRouter(svc Services, opts Options) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit, opts.Sessions)
	dashboardHandler := handlers.NewDashboardHandler(svc.Reports, svc.Market)
	instrumentoHandler := handlers.NewInstrumentoHandler(svc.Instrumentos, svc.Audit)
	calificacionHandler := handlers.NewCalificacionHandler(svc.Calificaciones, svc.Instrumentos, svc.Audit)
	cargaHandler := handlers.NewCargaHandler(svc.Imports, svc.Audit)
	adminHandler := handlers.NewAdminHandler(svc.Users, svc.Colaboradores, svc.Audit)
	reportHandler := handlers.NewReportHandler(svc.Reports, svc.Exports)
	apiHandler := handlers.NewAPIHandler(svc.Instrumentos, svc.Reports, svc.Market)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(opts.Sessions.Load())
	router.Use(middleware.RequestLogging())
	router.NoRoute(handlers.NotFound)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public pages
	router.GET("/", authHandler.Home)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/crear-cuenta", authHandler.SignupPage)
	router.POST("/crear-cuenta", authHandler.Signup)

	// Pages behind the session
	app := router.Group("/")
	app.Use(middleware.RequireAuth())

	app.GET("/dashboard", dashboardHandler.Dashboard)

	instrumentos := app.Group("/instrumentos")
	instrumentos.GET("", instrumentoHandler.List)
	instrumentos.GET("/nuevo", instrumentoHandler.New)
	instrumentos.POST("/nuevo", instrumentoHandler.Create)
	instrumentos.GET("/ver/:id", instrumentoHandler.Detail)
	instrumentos.GET("/editar/:id", instrumentoHandler.Edit)
	instrumentos.POST("/editar/:id", instrumentoHandler.Update)
	instrumentos.GET("/eliminar/:id", instrumentoHandler.DeleteRedirect)
	instrumentos.POST("/eliminar/:id", instrumentoHandler.Delete)

	calificaciones := app.Group("/calificaciones")
	calificaciones.GET("", calificacionHandler.List)
	calificaciones.GET("/nueva", calificacionHandler.New)
	calificaciones.POST("/nueva", calificacionHandler.Create)
	calificaciones.GET("/editar/:id", calificacionHandler.Edit)
	calificaciones.POST("/editar/:id", calificacionHandler.Update)
	calificaciones.POST("/eliminar/:id", calificacionHandler.Delete)

	app.GET("/carga-masiva", cargaHandler.Page)
	app.POST("/carga-masiva", cargaHandler.Upload)

	app.GET("/admin", adminHandler.Page)
	app.POST("/admin/colaboradores", adminHandler.CreateColaborador)

	app.GET("/reportes", reportHandler.Report)
	app.GET("/exportar/instrumentos.csv", reportHandler.ExportInstrumentos)
	app.GET("/exportar/calificaciones.csv", reportHandler.ExportCalificaciones)

	// JSON API
	api := router.Group("/api")
	api.Use(middleware.ErrorHandler())
	api.GET("/health", apiHandler.Health)

	v1 := api.Group("/v1")
	v1.Use(middleware.APIKeyAuth(opts.APIKey))
	v1.GET("/instrumentos", apiHandler.ListInstrumentos)
	v1.GET("/reportes", apiHandler.Report)
	v1.GET("/mercados", apiHandler.Markets)

	return router, nil
}
