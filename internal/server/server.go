package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/xpres/xpres-server/handlers"
	"github.com/xpres/xpres-server/internal/assets"
	"github.com/xpres/xpres-server/internal/config"
	"github.com/xpres/xpres-server/internal/database"
	"github.com/xpres/xpres-server/internal/external"
	"github.com/xpres/xpres-server/internal/localdata"
	receivedhandler "github.com/xpres/xpres-server/internal/received/handler"
	"github.com/xpres/xpres-server/internal/received/service"
	"github.com/xpres/xpres-server/pkg/middleware"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Seed      *localdata.Seed
	Receiver  *localdata.Receiver
	Fetcher   *external.Fetcher
	Received  service.Service
	Mongo     *database.Handle
	Redis     *redis.Client
	Gatherer  prometheus.Gatherer
	PublicDir string
	Started   time.Time
}

// New builds the gin engine: middleware, the JSON routes, ops endpoints, and
// the static-asset/404 fallback for everything else.
func New(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(middleware.CORS(), middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/", handlers.Index)
	handlers.NewLocalHandler(d.Seed, d.Receiver).Register(r)
	handlers.NewExternalHandler(d.Fetcher, cfg.External.DefaultURL).Register(r)
	receivedhandler.RegisterReceivedRoutes(r, d.Received)

	mongo := d.Mongo
	if mongo == nil {
		mongo = &database.Handle{}
	}
	r.GET("/health", handlers.Health)
	r.GET("/ready", handlers.Ready(mongo, d.Started))
	handlers.RegisterSwagger(r)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	acceptTrailingSlash(r)

	r.NoRoute(assets.Serve(d.PublicDir), handlers.NotFound)
	return r
}

// acceptTrailingSlash registers "/path/" next to every static "/path" route so
// both forms answer directly instead of redirecting.
func acceptTrailingSlash(r *gin.Engine) {
	for _, ri := range r.Routes() {
		if ri.Path == "/" || strings.HasSuffix(ri.Path, "/") || strings.ContainsAny(ri.Path, ":*") {
			continue
		}
		r.Handle(ri.Method, ri.Path+"/", ri.HandlerFunc)
	}
}
