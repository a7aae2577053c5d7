package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"medstore/m/internal/catalog"
	"medstore/m/internal/checkout"
	"medstore/m/internal/cli"
	"medstore/m/internal/config"
	"medstore/m/internal/sales"
	"medstore/m/internal/seed"
	"medstore/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ledger, err := sales.Open(cfg.TransactionDSN)
	if err != nil {
		log.Fatalf("unable to open transaction log: %v", err)
	}
	defer ledger.Close()

	st := store.New(cfg.CatalogPath, cfg.StartID)
	seed.LoadCatalog(st, cfg.SeedPath)

	catalogSvc := catalog.NewService(st)
	receipt := sales.NewReceiptLog(cfg.ReceiptPath)
	engine := checkout.NewEngine(st, ledger, receipt, cfg.TaxRate)

	app := cli.New(catalogSvc, engine, ledger, cfg, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("store session error: %v", err)
	}
}
