package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/bildev/facturepro/cmd/tui/internal/view"
	"github.com/bildev/facturepro/internal/config"
	"github.com/bildev/facturepro/internal/database"
	"github.com/bildev/facturepro/internal/document"
	docStore "github.com/bildev/facturepro/internal/document/store"
	"github.com/bildev/facturepro/internal/pdf"
	"github.com/bildev/facturepro/internal/supplier"
	supplierStore "github.com/bildev/facturepro/internal/supplier/store"
)

type model struct {
	docService *document.Service
	renderer   *pdf.Renderer
	sup        *supplier.Supplier

	currentView View

	documentsView view.DocumentsModel
	createView    view.CreateModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDocuments View = 1
	ViewCreate    View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.TUI.SupplierEmail == "" {
		slog.Error("TUI_SUPPLIER_EMAIL is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	docSvc := document.NewService(docStore.New(db))
	renderer := pdf.NewRenderer(cfg.App.Name)

	current, err := supplierStore.New(db).GetSupplierByEmail(context.Background(), cfg.TUI.SupplierEmail)
	if err != nil {
		slog.Error("failed to load supplier profile", "email", cfg.TUI.SupplierEmail, "error", err)
		os.Exit(1)
	}

	return model{
		docService:    docSvc,
		renderer:      renderer,
		sup:           current,
		currentView:   ViewMenu,
		documentsView: view.NewDocumentsModel(docSvc, renderer, current.ID),
		createView:    view.NewCreateModel(docSvc, current),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDocuments
				m.documentsView = view.NewDocumentsModel(m.docService, m.renderer, m.sup.ID)

				return m, m.documentsView.Init()
			case "2":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.docService, m.sup)

				return m, m.createView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDocuments:
		var newModel tea.Model
		newModel, cmd = m.documentsView.Update(msg)
		m.documentsView = newModel.(view.DocumentsModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Facture Pro\n\n" +
				"1. Mes documents\n" +
				"2. Nouveau document\n\n" +
				"q. Quitter",
		)
	case ViewDocuments:
		return m.documentsView.View()
	case ViewCreate:
		return m.createView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
