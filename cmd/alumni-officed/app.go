package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"alumni-office/internal/api"
	"alumni-office/internal/config"
	"alumni-office/internal/db"
	"alumni-office/internal/logger"
	"alumni-office/internal/report"
	"alumni-office/internal/secrets"
)

type serverApp struct {
	cfg    config.Config
	logSvc logger.LoggerService
	dbConn *db.Database
	srv    *http.Server
	errCh  chan error
}

func (a *serverApp) Start() error {
	bootstrapLog := logger.NewStderr()

	cfg, err := config.LoadOrDefault()
	if err != nil {
		bootstrapLog.Error("failed to load config", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		bootstrapLog.Error("config validation error", err)
		return err
	}
	a.cfg = cfg

	logSvc, err := logger.New(cfg)
	if err != nil {
		bootstrapLog.Error("logger init failed; using stderr", err)
		logSvc = bootstrapLog
	}
	a.logSvc = logSvc

	dbPassword, err := secrets.DBPassword()
	if err != nil && !errors.Is(err, secrets.ErrNotFound) {
		logSvc.Error("failed to load db password", err)
	}
	if errors.Is(err, secrets.ErrNotFound) && cfg.DB.Driver != config.DBDriverSQLite {
		logSvc.Warn("no db password stored; run `alumni-office password` or set " + secrets.DBPasswordEnvVar)
	}

	dbConn, err := db.Open(cfg, dbPassword, db.OptionsFor(cfg))
	if err != nil {
		logSvc.Error("db connection failed", err)
		a.Stop(context.Background())
		return err
	}
	a.dbConn = dbConn
	logSvc.Success(fmt.Sprintf("connected to %s database", cfg.DB.Driver))

	srv, err := api.NewServer(cfg, api.ServerDeps{
		Store:    dbConn,
		Logger:   logSvc,
		Renderer: report.New(),
	})
	if err != nil {
		logSvc.Error("server init failed", err)
		a.Stop(context.Background())
		return err
	}
	a.srv = srv

	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- srv.ListenAndServe()
	}()

	logSvc.Info(fmt.Sprintf("alumni-officed listening on %s", srv.Addr))
	return nil
}

// Stop drains in-flight requests before closing the pool and the log file.
func (a *serverApp) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil && a.logSvc != nil {
			a.logSvc.Error("shutdown error", err)
		}
	}
	if a.dbConn != nil {
		_ = a.dbConn.Close()
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

func (a *serverApp) Errors() <-chan error {
	return a.errCh
}
