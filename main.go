package main

import (
	"context"
	"os"
	"time"

	"bneibrit/client/oss"
	"bneibrit/common"
	"bneibrit/config"
	"bneibrit/document/fonts"
	"bneibrit/document/summary"
	"bneibrit/domain/compliance"
	"bneibrit/domain/rates"
	"bneibrit/event"
	"bneibrit/i18n"
	"bneibrit/idgen"
	"bneibrit/infra/tracing"
	"bneibrit/persistence"
	"bneibrit/servehttp"
	"bneibrit/store"
	"bneibrit/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		common.Log.Fatalf("load config failed: %v", err)
	}
	if err := common.ConfigureLog(cfg.App.LogFormat, cfg.App.LogLevel); err != nil {
		common.Log.Fatalf("configure log failed: %v", err)
	}
	common.Log.Info("service start")

	closer, err := tracing.Bootstrap(cfg.Tracing.Enabled)
	if err != nil {
		common.Log.Fatalf("tracing bootstrap failed: %v", err)
	}
	defer closer.Close()

	// create database (no conflict)
	if cfg.Database.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(cfg.Database.DriverArgs); err != nil {
			common.Log.Fatalf("failed to prepare database: %v", err)
		}
	}
	ds := &persistence.DataSourceManager{DatabaseConfig: &cfg.Database}
	if err := ds.Start(); err != nil {
		common.Log.Fatalf("database connection failed: %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	if err := store.AutoMigrate(ds.GormDB(context.Background())); err != nil {
		common.Log.Fatalf("database migration failed: %v", err)
	}

	if err := oss.Bootstrap(cfg.Archive); err != nil {
		common.Log.Fatalf("object archive bootstrap failed: %v", err)
	}

	event.EventHandlers = append(event.EventHandlers, event.AuditLogHandler)

	gormStore := store.New(ds)
	ws := workspace.New(gormStore, rates.NewProvider(gormStore, cfg.App.RateCacheTTL), idgen.NewProcessGenerator(), workspace.Options{
		Policy: compliance.Policy{DueDay: cfg.Compliance.DueDay, ReminderDays: cfg.Compliance.ReminderDays},
	})
	if err := ws.Load(context.Background()); err != nil {
		common.Log.Fatalf("workspace load failed: %v", err)
	}
	ws.ApplyDepositPolicy()

	crontab, err := compliance.StartPolicyCron(cfg.Compliance.PolicyCron, func() {
		ws.ApplyDepositPolicy()
	})
	if err != nil {
		common.Log.Fatalf("deposit policy schedule failed: %v", err)
	}
	defer crontab.Stop()

	catalog, err := i18n.Default()
	if err != nil {
		common.Log.Fatalf("load messages failed: %v", err)
	}
	if !catalog.Supports(cfg.Document.DefaultLocale) {
		common.Log.Fatalf("default locale '%s' is not supported", cfg.Document.DefaultLocale)
	}
	composer := &summary.Composer{
		Fonts:   fonts.Loader{FS: os.DirFS(cfg.Document.FontDir)},
		Catalog: catalog,
		Now:     time.Now,
	}

	engine := servehttp.NewEngine()
	servehttp.RegisterRestAPI(engine, &servehttp.Server{
		Workspace:     ws,
		Renderer:      composer,
		DefaultLocale: cfg.Document.DefaultLocale,
	})
	servehttp.StartHTTPServer(engine, cfg.App.Port)

	ws.Wait()
	common.Log.Info("service exiting")
}
