package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bildev/facturepro/internal/document"
	"github.com/bildev/facturepro/internal/importitems"
	"github.com/bildev/facturepro/internal/supplier"
)

type CreateModel struct {
	CommonModel
	docs *document.Service
	sup  *supplier.Supplier

	form      *huh.Form
	submitted bool
	status    string

	formType   string
	formClient string
	formEmail  string
	formDate   string
	formVAT    string
	formNotes  string
	formItems  string
}

func NewCreateModel(docs *document.Service, sup *supplier.Supplier) CreateModel {
	m := CreateModel{
		docs:     docs,
		sup:      sup,
		formType: string(document.TypeInvoice),
		formDate: FormatDate(time.Now()),
		formVAT:  "20",
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type de document").
				Options(
					huh.NewOption("Facture", string(document.TypeInvoice)),
					huh.NewOption("Devis", string(document.TypeQuote)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("client_name").
				Title("Nom du client").
				Value(&m.formClient).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("le nom du client est requis")
					}
					return nil
				}),

			huh.NewInput().
				Key("client_email").
				Title("Email du client").
				Value(&m.formEmail),

			huh.NewInput().
				Key("date").
				Title("Date (AAAA-MM-JJ)").
				Value(&m.formDate),

			huh.NewInput().
				Key("vat_rate").
				Title("Taux de TVA (%)").
				Value(&m.formVAT),

			huh.NewText().
				Key("items").
				Title("Articles (description;quantité;prix unitaire, un par ligne)").
				Value(&m.formItems),

			huh.NewText().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(70).WithShowHelp(false)

	return m
}

type createdMsg struct {
	doc *document.Document
	err error
}

func (m CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if msg, ok := msg.(createdMsg); ok {
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur lors de la création du document: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Document créé: %s", msg.doc.ID)
		}

		return m, nil
	}

	if m.submitted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitted = true

	return m, m.createCmd()
}

func (m CreateModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))
		if err != nil {
			return createdMsg{err: fmt.Errorf("date invalide")}
		}

		vatRate, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(m.formVAT), ",", "."), 64)
		if err != nil {
			return createdMsg{err: fmt.Errorf("taux de TVA invalide")}
		}

		items, lineErrs, err := importitems.Parse(strings.NewReader(m.formItems))
		if err != nil {
			return createdMsg{err: err}
		}

		if len(lineErrs) > 0 {
			return createdMsg{err: lineErrs[0]}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		doc, err := m.docs.Create(ctx, document.CreateParams{
			Type:         document.Type(m.formType),
			SupplierID:   m.sup.ID,
			SupplierName: m.sup.DisplayName(),
			Company:      m.sup.CompanySnapshot(),
			ClientName:   strings.TrimSpace(m.formClient),
			ClientEmail:  strings.TrimSpace(m.formEmail),
			Date:         date,
			Items:        items,
			VATRate:      vatRate,
			Notes:        strings.TrimSpace(m.formNotes),
		})

		return createdMsg{doc: doc, err: err}
	}
}

func (m CreateModel) View() string {
	if m.submitted {
		body := m.status
		if body == "" {
			body = "Création du document..."
		}

		return lipgloss.NewStyle().Padding(2).Render(body + "\n\n(Esc pour revenir)")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		"Nouveau document\n\n" + m.form.View(),
	)
}
