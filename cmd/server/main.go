package main

import (
	"context"
	"log"
	"net/http"

	web "ubase/internal/adapters/http"
	"ubase/internal/adapters/storage"
	"ubase/internal/adapters/storage/accountstore"
	"ubase/internal/adapters/storage/coachingstore"
	"ubase/internal/adapters/storage/eikenstore"
	"ubase/internal/adapters/storage/examstore"
	"ubase/internal/adapters/storage/sheetsgw"
	"ubase/internal/adapters/storage/sqlitegw"
	"ubase/internal/adapters/storage/studentstore"
	"ubase/internal/application/orchestrators"
	"ubase/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	ctx := context.Background()

	var gw storage.Gateway
	switch cfg.Backend {
	case config.BackendSheets:
		sheets, err := sheetsgw.New(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("failed to open spreadsheet: %v", err)
		}
		gw = sheets
	default:
		db, err := sqlitegw.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		gw = db
	}

	if err := gw.EnsureTables(ctx); err != nil {
		log.Fatalf("failed to provision tables: %v", err)
	}

	cache := storage.NewCache(gw, cfg.CacheTTL)
	tables := storage.NewTableClient(gw, cache)

	stores := &web.Stores{
		AccountStore:  accountstore.NewSheetStore(tables),
		StudentStore:  studentstore.NewSheetStore(tables),
		ExamStore:     examstore.NewSheetStore(tables),
		CoachingStore: coachingstore.NewSheetStore(tables),
		EikenStore:    eikenstore.NewSheetStore(tables),
		Tables:        tables,
	}

	// Seed the master account if the users table has none
	created, err := orchestrators.ExecuteEnsureMaster(ctx, orchestrators.EnsureMasterInput{
		Name:     cfg.MasterName,
		Password: cfg.MasterPassword,
	}, orchestrators.EnsureMasterDeps{AccountStore: stores.AccountStore})
	if err != nil {
		log.Fatalf("failed to seed master account: %v", err)
	}
	if created {
		log.Println("Master account seeded")
	}

	mux := web.NewMux(stores)

	log.Printf("Ubase %s starting on %s (backend=%s)", version, cfg.Addr, cfg.Backend)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
