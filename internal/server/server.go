// Package server wires the HTTP surface: buyer checkout routes, admin
// reconciliation routes, auth and the operational endpoints.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/galeri/internal/adminreport"
	admindomain "github.com/smallbiznis/galeri/internal/adminreport/domain"
	"github.com/smallbiznis/galeri/internal/catalog"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
	"github.com/smallbiznis/galeri/internal/config"
	"github.com/smallbiznis/galeri/internal/identity"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	"github.com/smallbiznis/galeri/internal/observability"
	"github.com/smallbiznis/galeri/internal/observability/logger"
	"github.com/smallbiznis/galeri/internal/observability/metrics"
	"github.com/smallbiznis/galeri/internal/observability/tracing"
	"github.com/smallbiznis/galeri/internal/order"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	"github.com/smallbiznis/galeri/internal/subscription"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log        *zap.Logger
	sessionTTL time.Duration

	identity      identitydomain.Service
	catalog       catalogdomain.Service
	orders        orderdomain.Service
	subscriptions subscriptiondomain.Service
	reports       admindomain.Service
}

type Params struct {
	fx.In

	Cfg    config.Config
	ObsCfg observability.Config
	Log    *zap.Logger

	Identity      identitydomain.Service
	Catalog       catalogdomain.Service
	Orders        orderdomain.Service
	Subscriptions subscriptiondomain.Service
	Reports       admindomain.Service

	Metrics *metrics.HTTPMetrics
}

func NewServer(p Params) *Server {
	return &Server{
		log:           p.Log.Named("server"),
		sessionTTL:    time.Duration(p.Cfg.SessionTTLHours) * time.Hour,
		identity:      p.Identity,
		catalog:       p.Catalog,
		orders:        p.Orders,
		subscriptions: p.Subscriptions,
		reports:       p.Reports,
	}
}

// NewEngine assembles the gin engine with the middleware chain and routes.
func NewEngine(p Params, s *Server) *gin.Engine {
	if !p.ObsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		tracing.GinMiddleware(),
		logger.GinMiddleware(logger.MiddlewareConfig{Debug: p.ObsCfg.Debug()}),
		metrics.GinMiddleware(p.Metrics),
		ErrorHandlingMiddleware(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := engine.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/me", SessionRequired(s.identity), s.me)
	}

	api := engine.Group("/api")
	{
		api.GET("/artworks", s.listArtworks)
		api.GET("/artworks/:id", s.getArtwork)

		authed := api.Group("", SessionRequired(s.identity))
		authed.POST("/orders", s.createOrder)
		authed.GET("/orders/:id", s.getOrder)
	}

	admin := engine.Group("/admin", SessionRequired(s.identity), AdminRequired())
	{
		admin.GET("/orders", s.listOrders)
		admin.POST("/orders/:id/confirm-deposit", s.confirmDeposit)
		admin.POST("/orders/:id/cancel", s.cancelOrder)

		admin.GET("/subscriptions", s.listSubscriptions)
		admin.GET("/subscriptions/:id", s.getSubscription)
		admin.POST("/subscriptions/:id/deposits", s.appendDeposit)

		admin.GET("/artworks", s.listArtworksAdmin)
		admin.POST("/artworks", s.createArtwork)
		admin.POST("/artworks/:id/approve", s.approveArtwork)
		admin.POST("/artworks/:id/reject", s.rejectArtwork)
	}

	return engine
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	identity.Module,
	catalog.Module,
	order.Module,
	subscription.Module,
	adminreport.Module,
	fx.Provide(NewServer, NewEngine),
	fx.Invoke(run),
)
