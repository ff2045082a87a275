package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *config.AppConfig
	bunDB  *bun.DB
	auth   auth.Authenticator
	repo   auth.RepositoryManager
	srv    *fiber.App
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("auth-api"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.LoadConfig()
	if err != nil {
		lgr.Error("configuration error", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.config.Server.Debug {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg))
		fmt.Println("============")
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		lgr.Error("persistence error", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.Error("http server error", "error", err)
		os.Exit(1)
	}

	go func() {
		addr := ":" + app.config.Server.Port
		app.GetLogger("server").Info("listening", "addr", addr)
		if err := app.srv.Listen(addr); err != nil {
			app.GetLogger("server").Error("listener stopped", "error", err)
		}
	}()

	sig := WaitExitSignal()
	app.GetLogger("server").Info("shutting down", "signal", sig.String())

	if err := app.srv.ShutdownWithTimeout(10 * time.Second); err != nil {
		app.GetLogger("server").Error("shutdown error", "error", err)
	}

	if err := app.bunDB.Close(); err != nil {
		app.GetLogger("server").Error("store close error", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, app.config.Store.DSN)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	repo := auth.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		return err
	}

	// Fail startup when the store is unreachable rather than serving
	// requests that can only error out.
	pingCtx, cancel := context.WithTimeout(ctx, app.config.Store.Timeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		return err
	}

	app.bunDB = db
	app.repo = repo

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := fiber.New(fiber.Config{
		AppName:           "auth-api",
		EnablePrintRoutes: app.config.Server.Debug,
	})

	srv.Use(helmet.New())
	srv.Use(cors.New(cors.Config{
		AllowOrigins: app.config.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	srv.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
			})
		},
	}))

	authenticator := auth.NewAuthenticator(app.repo, app.config.Auth).
		WithLogger(app.GetLogger("auth")).
		WithStoreTimeout(app.config.Store.Timeout)

	app.auth = authenticator

	controller := auth.NewAuthController(authenticator,
		auth.WithControllerLogger(app.GetLogger("auth:ctrl")),
		auth.WithControllerDebug(app.config.Server.Debug),
	)
	controller.ContextKey = app.config.Auth.ContextKey
	controller.TokenLookup = app.config.Auth.TokenLookup
	controller.AuthScheme = app.config.Auth.AuthScheme

	auth.RegisterAuthRoutes(srv, controller)

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
