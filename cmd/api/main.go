package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bildev/facturepro/internal/auth"
	"github.com/bildev/facturepro/internal/config"
	"github.com/bildev/facturepro/internal/database"
	"github.com/bildev/facturepro/internal/document"
	docStore "github.com/bildev/facturepro/internal/document/store"
	facturepro "github.com/bildev/facturepro/internal/http"
	authHandler "github.com/bildev/facturepro/internal/http/auth"
	documentHandler "github.com/bildev/facturepro/internal/http/document"
	exportHandler "github.com/bildev/facturepro/internal/http/export"
	profileHandler "github.com/bildev/facturepro/internal/http/profile"
	"github.com/bildev/facturepro/internal/pdf"
	"github.com/bildev/facturepro/internal/supplier"
	supplierStore "github.com/bildev/facturepro/internal/supplier/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		tokenService    = auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		supplierService = supplier.NewService(supplierStore.New(db))
		documentService = document.NewService(docStore.New(db))
		renderer        = pdf.NewRenderer(cfg.App.Name)
	)

	var (
		authH     = authHandler.NewHandler(supplierService, tokenService)
		profileH  = profileHandler.NewHandler(supplierService)
		documentH = documentHandler.NewHandler(documentService, supplierService)
		exportH   = exportHandler.NewHandler(documentService, renderer)
	)

	router := facturepro.New(tokenService, cfg.Server.AllowedOrigins, authH, profileH, documentH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
