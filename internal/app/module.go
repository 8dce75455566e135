package app

import (
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/cart"
	"github.com/pkaramon/book-store-sub000/internal/catalog"
	"github.com/pkaramon/book-store-sub000/internal/identity"
	"github.com/pkaramon/book-store-sub000/internal/notification"
)

// initModules wires every module switched on by modules.<name>.enabled.
// A module that fails to wire stops the process.
func (a *App) initModules() {
	modules := []struct {
		name string
		init func() error
	}{
		{"identity", func() error {
			return identity.New(a.ctx, identity.Dependency{
				DBConn:     a.dbConn,
				Goroutine:  a.goroutine,
				Authz:      a.authz,
				Router:     a.router,
				Messaging:  a.messaging,
				Config:     a.config,
				Instrument: a.ins,
				UID:        a.uid,
				UUID:       a.uuid,
				Passwords:  a.passwords,
				Clock:      a.clock,
				Validator:  a.validator,
				JWT:        a.jwt,
			})
		}},
		{"catalog", func() error {
			return catalog.New(a.ctx, catalog.Dependency{
				DBConn:     a.dbConn,
				Storage:    a.storage,
				Authz:      a.authz,
				Router:     a.router,
				Config:     a.config,
				Instrument: a.ins,
				UID:        a.uid,
				UUID:       a.uuid,
				Clock:      a.clock,
				Validator:  a.validator,
				JWT:        a.jwt,
			})
		}},
		{"cart", func() error {
			return cart.New(a.ctx, cart.Dependency{
				DBConn:     a.dbConn,
				Redis:      a.cacheConn,
				Router:     a.router,
				Instrument: a.ins,
				Validator:  a.validator,
				JWT:        a.jwt,
			})
		}},
		{"notification", func() error {
			return notification.New(a.ctx, notification.Dependency{
				Messaging:  a.messaging,
				Redis:      a.cacheConn,
				Mail:       a.mail,
				Config:     a.config,
				Instrument: a.ins,
				UUID:       a.uuid,
				Clock:      a.clock,
				Goroutine:  a.goroutine,
				Validator:  a.validator,
			})
		}},
	}

	for _, m := range modules {
		if !a.config.GetBool("modules." + m.name + ".enabled") {
			slog.Info("module disabled", "module", m.name)
			continue
		}
		if err := m.init(); err != nil {
			fatal("failed to init module", err, "module", m.name)
		}
	}
}
