package view

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/bildev/facturepro/internal/document"
	"github.com/bildev/facturepro/internal/pdf"
)

type DocumentsModel struct {
	CommonModel
	docs       *document.Service
	renderer   *pdf.Renderer
	supplierID uuid.UUID

	table   table.Model
	list    []*document.Document
	loading bool
	err     error
	status  string
}

func NewDocumentsModel(docs *document.Service, renderer *pdf.Renderer, supplierID uuid.UUID) DocumentsModel {
	columns := []table.Column{
		{Title: "N°", Width: 16},
		{Title: "Type", Width: 8},
		{Title: "Statut", Width: 12},
		{Title: "Client", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Total TTC", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DocumentsModel{
		docs:       docs,
		renderer:   renderer,
		supplierID: supplierID,
		table:      t,
		loading:    true,
	}
}

type loadDocsMsg struct {
	docs []*document.Document
	err  error
}

type actionMsg struct {
	status string
	err    error
}

func (m DocumentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DocumentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		docs, err := m.docs.List(ctx, m.supplierID)

		return loadDocsMsg{docs: docs, err: err}
	}
}

func (m DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDocsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.list = msg.docs
		m.err = nil
		m.refreshTable()

		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			return m, m.statusCmd(document.StatusPaid, "Facture marquée payée")
		case "u":
			return m, m.statusCmd(document.StatusPending, "Facture remise en attente")
		case "x":
			return m, m.statusCmd(document.StatusCancelled, "Facture annulée")
		case "c":
			return m, m.convertCmd()
		case "d":
			return m, m.deleteCmd()
		case "e":
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DocumentsModel) selected() *document.Document {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

func (m DocumentsModel) statusCmd(status document.Status, success string) tea.Cmd {
	doc := m.selected()
	if doc == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.docs.UpdateStatus(ctx, doc.ID, status); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: success}
	}
}

func (m DocumentsModel) convertCmd() tea.Cmd {
	doc := m.selected()
	if doc == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.docs.ConvertToInvoice(ctx, doc.ID); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: "Devis converti en facture"}
	}
}

func (m DocumentsModel) deleteCmd() tea.Cmd {
	doc := m.selected()
	if doc == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.docs.Delete(ctx, doc.ID); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: "Document supprimé"}
	}
}

func (m DocumentsModel) exportCmd() tea.Cmd {
	doc := m.selected()
	if doc == nil {
		return nil
	}

	return func() tea.Msg {
		artifact, err := m.renderer.Render(doc)
		if err != nil {
			return actionMsg{err: err}
		}

		filename := m.renderer.Filename(doc)
		if err := os.WriteFile(filename, artifact, 0o644); err != nil {
			return actionMsg{err: err}
		}

		return actionMsg{status: "PDF exporté: " + filename}
	}
}

func (m *DocumentsModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, len(m.list))
	for i, doc := range m.list {
		rows[i] = table.Row{
			doc.ID,
			doc.Type.Slug(),
			statusLabels[doc.EffectiveStatus(now)],
			doc.ClientName,
			FormatDate(doc.Date),
			FormatEuro(doc.Total),
		}
	}

	m.table.SetRows(rows)
}

func (m DocumentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des documents...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Erreur de chargement des documents: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := "Esc: retour | r: rafraîchir | p: payée | u: en attente | x: annuler | c: convertir | d: supprimer | e: exporter PDF"

	return lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Render(m.status),
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(help),
	)
}
