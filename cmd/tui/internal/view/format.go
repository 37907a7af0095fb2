package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bildev/facturepro/internal/document"
)

const dbTimeout = 5 * time.Second

// FormatEuro formats a stored full-precision amount for display, rounded to
// 2 decimals.
func FormatEuro(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var statusStyles = map[document.Status]lipgloss.Style{
	document.StatusPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	document.StatusPaid:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	document.StatusOverdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	document.StatusCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var statusLabels = map[document.Status]string{
	document.StatusPending:   "En attente",
	document.StatusPaid:      "Payée",
	document.StatusOverdue:   "En retard",
	document.StatusCancelled: "Annulée",
}

// StatusBadge renders the colored French label for a status.
func StatusBadge(s document.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}

	return style.Render(statusLabels[s])
}
