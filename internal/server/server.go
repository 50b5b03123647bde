// Package server exposes the REST API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	"github.com/nexoav/nexoav/internal/config"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/internal/observability"
	obsmiddleware "github.com/nexoav/nexoav/internal/observability/logger"
	obsmetrics "github.com/nexoav/nexoav/internal/observability/metrics"
	obstracing "github.com/nexoav/nexoav/internal/observability/tracing"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	"github.com/nexoav/nexoav/internal/providers/pdf"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	clientSvc     clientdomain.Service
	productSvc    productdomain.Service
	technicianSvc techdomain.Service
	taxSvc        taxdomain.Service
	documentSvc   docdomain.Service
	companySvc    companydomain.Service
	pdfProvider   pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	ClientSvc     clientdomain.Service
	ProductSvc    productdomain.Service
	TechnicianSvc techdomain.Service
	TaxSvc        taxdomain.Service
	DocumentSvc   docdomain.Service
	CompanySvc    companydomain.Service
	PDFProvider   pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		clientSvc:     p.ClientSvc,
		productSvc:    p.ProductSvc,
		technicianSvc: p.TechnicianSvc,
		taxSvc:        p.TaxSvc,
		documentSvc:   p.DocumentSvc,
		companySvc:    p.CompanySvc,
		pdfProvider:   p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PATCH("/clients/:id", s.UpdateClient)
	api.POST("/clients/:id/archive", s.ArchiveClient)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.POST("/products/:id/deactivate", s.DeactivateProduct)

	// -------- Technicians --------
	api.GET("/technicians", s.ListTechnicians)
	api.POST("/technicians", s.CreateTechnician)
	api.GET("/technicians/:id", s.GetTechnicianByID)
	api.PATCH("/technicians/:id", s.UpdateTechnician)
	api.POST("/technicians/:id/deactivate", s.DeactivateTechnician)

	// -------- Tax options --------
	api.GET("/tax-options", s.ListTaxOptions)
	api.POST("/tax-options", s.CreateTaxOption)
	api.PATCH("/tax-options/:id", s.UpdateTaxOption)
	api.POST("/tax-options/:id/disable", s.DisableTaxOption)

	// -------- Documents --------
	api.GET("/documents", s.ListDocuments)
	api.POST("/documents", s.CreateDocument)
	api.GET("/documents/:id", s.GetDocumentByID)
	api.PATCH("/documents/:id", s.UpdateDocument)
	api.PUT("/documents/:id/lines", s.UpdateDocumentLines)
	api.POST("/documents/:id/transition", s.TransitionDocument)
	api.POST("/documents/:id/payments", s.RegisterDocumentPayment)
	api.POST("/documents/:id/convert", s.ConvertQuote)
	api.GET("/documents/:id/pdf", s.RenderDocumentPDF)

	// -------- Company profile --------
	api.GET("/company", s.GetCompanyProfile)
	api.PUT("/company", s.UpdateCompanyProfile)
}
