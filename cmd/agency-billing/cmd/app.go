package cmd

import (
	"os"
	"path/filepath"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/internal/lineitem"
	"github.com/mkojima-works/agency-billing/internal/logger"
	"github.com/mkojima-works/agency-billing/pkg/config"
	"github.com/mkojima-works/agency-billing/pkg/db"
	"github.com/mkojima-works/agency-billing/pkg/tablestore"
)

// app bundles the wired-up components a command needs. Everything is
// constructed explicitly here; there is no hidden shared state.
type app struct {
	cfg     *config.Config
	repo    *lineitem.Repository
	store   *billing.Store
	service *billing.Service
}

// newApp loads configuration and wires the table-store client, line-item
// repository and billing service.
func newApp() (*app, error) {
	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(
		"tablestore.baseUrl",
		"tablestore.appId",
		"tablestore.appSecret",
		"tablestore.appToken",
		"tablestore.tableId",
	); err != nil {
		return nil, err
	}

	client := tablestore.NewClient(tablestore.ClientConfig{
		BaseURL:   cfg.TableStore.BaseURL,
		AppID:     cfg.TableStore.AppID,
		AppSecret: cfg.TableStore.AppSecret,
		AppToken:  cfg.TableStore.AppToken,
		TableID:   cfg.TableStore.TableID,
	})

	repo := lineitem.NewRepository(client, logger.Get())
	store := billing.NewStore()
	service := billing.NewService(repo, store, cfg.Billing.TaxRate, logger.Get())

	return &app{
		cfg:     cfg,
		repo:    repo,
		store:   store,
		service: service,
	}, nil
}

// writeOutputFile writes a file, creating its parent directory as needed.
func writeOutputFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// openHistory opens the local history database.
func (a *app) openHistory() (*db.Connection, *db.History, error) {
	conn, err := db.Open(a.cfg.Billing.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return conn, db.NewHistory(conn), nil
}
