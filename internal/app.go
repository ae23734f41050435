package internal

import (
	"context"
	"strings"
	"time"

	"auditstream/internal/db"
	"auditstream/internal/env"
	"auditstream/internal/events"
	"auditstream/internal/fanout"
	"auditstream/internal/logging"
	"auditstream/internal/logs"
	"auditstream/internal/metrics"
	"auditstream/internal/models"
	"auditstream/internal/report"
	"auditstream/internal/store"
	"auditstream/internal/tailer"
	"auditstream/internal/users"
	"auditstream/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var stopTailer context.CancelFunc = func() {}

var Logger = zap.NewNop()

// SetupApp connects the stores, starts the tailer and registers every route.
func SetupApp(deployment string, envRoot string, appVersion string) *fiber.App {
	app := fiber.New()

	env.Init(envRoot, appVersion)

	deploy := strings.TrimSpace(deployment)
	Logger = logging.New(deploy)

	if err := db.InitDB(); err != nil {
		Logger.Fatal("Could not connect to MongoDB", zap.Error(err))
		return nil
	}

	// the directory cache is optional
	if err := db.InitCache(); err != nil {
		Logger.Warn("Could not connect to Redis, directory cache disabled", zap.Error(err))
	}

	if db.Events != nil {
		events.Em = events.NewEmitter(db.Events, deploy)
	} else {
		events.Em = nil
	}

	st := store.New(db.Logs, db.Users)

	ctx, cancel := context.WithTimeout(db.Ctx, 30*time.Second)
	st.EnsureIndexes(ctx, Logger)
	cancel()

	login := models.LoginSignature{Path: env.LOGIN_PATH, Method: env.LOGIN_METHOD}

	router := fanout.NewRouter(st, login, Logger.Named("fanout"))

	tailCtx, tailCancel := context.WithCancel(context.Background())
	stopTailer = tailCancel
	tailer.New(st, router, tailer.Config{
		Interval: env.TAILER_INTERVAL,
		Backoff:  env.TAILER_BACKOFF,
		Login:    login,
	}, Logger.Named("tailer")).Start(tailCtx)

	var cache users.Cache
	if db.RDB != nil {
		cache = db.RedisCache{}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: env.CORS_ORIGINS,
	}))

	app.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("PONG")
	})

	app.Get("/version", func(c fiber.Ctx) error {
		return c.SendString("v" + env.VERSION)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	logs.Routes(app, logs.NewService(st, login), Logger.Named("logs"))
	report.Routes(app, report.NewService(st, login), Logger.Named("report"))
	users.Routes(app, users.NewService(st, cache, env.ORG_ID, env.USERS_CACHE_TTL, Logger.Named("users")), Logger.Named("users"))
	ws.Routes(app, ws.NewHandler(router, events.Em, Logger.Named("ws")))

	return app
}

// Shutdown stops the tailer, flushes pending events and closes the stores.
func Shutdown(ctx context.Context) {
	stopTailer()
	events.Em.Close()
	db.Close(ctx)
	_ = Logger.Sync()
}
