package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/notify"
	"github.com/mbolis/quick-form/routes"
	"github.com/mbolis/quick-form/service"
	"github.com/mbolis/quick-form/tenant"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	store := database.NewStore(db)
	if cfg.Bootstrap != "" {
		err = bootstrap(store, cfg.Bootstrap, cfg.NotifyTo)
		if err != nil {
			log.Fatal("main.bootstrap:", err)
		}
	}

	var notifier service.Notifier = notify.Logger{}
	if len(cfg.SMTP.Servers) > 0 {
		mailer, err := notify.NewMailer(cfg.SMTP, store)
		if err != nil {
			log.Fatal("main.smtp:", err)
		}
		defer mailer.Close()
		notifier = mailer
	}

	resolver := tenant.Resolver{
		Owners:   store,
		Fallback: cfg.FallbackTenant,
	}

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Forms:        service.NewFormService(store, resolver),
		Submissions:  service.NewSubmissionService(store, resolver, notifier, cfg.NotifyTimeout),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

// bootstrap creates the tenant and user named by a "tenant:username:password" argument.
func bootstrap(store *database.Store, arg, notifyTo string) error {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 {
		return errors.New("expected tenant:username:password")
	}
	ctx := context.Background()
	tenantID, err := store.EnsureTenant(ctx, parts[0])
	if err != nil {
		return err
	}
	log.Infof("tenant %q has id %s", parts[0], tenantID)
	if notifyTo != "" {
		err = store.AddRecipient(ctx, tenantID, notifyTo)
		if err != nil {
			return err
		}
	}
	return store.EnsureUser(ctx, parts[1], parts[2], tenantID)
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
