package server

import (
	"context"
	"net/http"
	"time"

	certdomain "github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/internal/config"
	issuerdomain "github.com/gdg-oncampus/certhub/internal/issuer/domain"
	"github.com/gdg-oncampus/certhub/internal/observability"
	obsmiddleware "github.com/gdg-oncampus/certhub/internal/observability/logger"
	obsmetrics "github.com/gdg-oncampus/certhub/internal/observability/metrics"
	templatedomain "github.com/gdg-oncampus/certhub/internal/template/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const serviceName = "certhub"

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log, obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   serviceName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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
	engine      *gin.Engine
	cfg         config.Config
	issuerSvc   issuerdomain.Service
	certSvc     certdomain.Service
	templateSvc templatedomain.Service

	authLimiter        *rateLimiter
	apiLimiter         *rateLimiter
	certificateLimiter *rateLimiter
	validationLimiter  *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	IssuerSvc   issuerdomain.Service
	CertSvc     certdomain.Service
	TemplateSvc templatedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:             p.Gin,
		cfg:                p.Cfg,
		issuerSvc:          p.IssuerSvc,
		certSvc:            p.CertSvc,
		templateSvc:        p.TemplateSvc,
		authLimiter:        newRateLimiter(10, time.Minute),
		apiLimiter:         newRateLimiter(100, 15*time.Minute),
		certificateLimiter: newRateLimiter(50, time.Hour),
		validationLimiter:  newRateLimiter(30, time.Minute),
	}

	svc.registerAPIRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/auth/me", s.rateLimit(s.authLimiter), s.IdentityRequired(), s.Me)

	profile := api.Group("/profile", s.rateLimit(s.apiLimiter), s.IdentityRequired())
	profile.GET("", s.GetProfile)
	profile.PUT("", s.UpdateProfile)

	certs := api.Group("/certificates", s.IdentityRequired())
	certs.POST("", s.rateLimit(s.certificateLimiter), s.CreateCertificate)
	certs.POST("/bulk", s.rateLimit(s.certificateLimiter), s.CreateCertificateBatch)
	certs.GET("", s.rateLimit(s.apiLimiter), s.ListCertificates)

	templates := api.Group("/templates/email", s.rateLimit(s.apiLimiter), s.IdentityRequired())
	templates.GET("", s.ListEmailTemplates)
	templates.GET("/:type/:name", s.GetEmailTemplate)
	templates.POST("", s.UpsertEmailTemplate)
	templates.DELETE("/:id", s.DeleteEmailTemplate)
	templates.PUT("/:id/default", s.SetDefaultEmailTemplate)
}

func (s *Server) registerPublicRoutes() {
	s.engine.GET("/api/validate/:uniqueId", s.rateLimit(s.validationLimiter), s.ValidateCertificate)
}
