package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/hash"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/mail"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/storage"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator *validator.Validator
	clock     clock.Clocker
	passwords *hash.PasswordMaker
	uid       uid.StringID
	uuid      uid.StringID
	jwt       jwt.JWT
	authz     authz.Authorizer

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initAuthz()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
