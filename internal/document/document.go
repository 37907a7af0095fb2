package document

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes invoices from quotes.
type Type string

const (
	TypeInvoice Type = "invoice"
	TypeQuote   Type = "quote"
)

// Prefix returns the identifier prefix for the type.
func (t Type) Prefix() string {
	if t == TypeQuote {
		return "DEV"
	}

	return "FAC"
}

// Slug returns the French filename slug for the type.
func (t Type) Slug() string {
	if t == TypeQuote {
		return "devis"
	}

	return "facture"
}

func (t Type) Valid() bool {
	return t == TypeInvoice || t == TypeQuote
}

// Status represents the payment state of an invoice. Quotes carry no status
// semantics until converted.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrNoItems           = errors.New("document has no items")
	ErrInvalidItem       = errors.New("item quantity and unit price must not be negative")
	ErrInvalidVATRate    = errors.New("vat rate must be between 0 and 100")
	ErrNotQuote          = errors.New("document is not a quote")
	ErrNotInvoice        = errors.New("document is not an invoice")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// allowedTransitions is the explicit status machine. Only invoices move
// through it: pending can be settled or cancelled, and a paid invoice can be
// reopened. Overdue is never a transition target, it is derived on read.
var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusPending},
}

// CanTransition reports whether the status machine allows moving from one
// status to another.
func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

// Item is a single line on a document. Order is display-significant.
type Item struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Total returns quantity × unit price for the line.
func (i Item) Total() float64 {
	return i.Quantity * i.UnitPrice
}

// CompanyInfo is the issuing party, snapshotted onto each document at
// creation time. Later profile edits never propagate to existing documents.
type CompanyInfo struct {
	Name    string
	SIREN   string
	Phone   string
	Email   string
	Address string
}

// Document is an invoice or quote record.
type Document struct {
	ID           string
	Type         Type
	Status       Status
	SupplierID   uuid.UUID
	SupplierName string
	Company      CompanyInfo
	ClientName   string
	ClientEmail  string
	Date         time.Time
	DueDate      time.Time
	Items        []Item
	Subtotal     float64
	VATRate      float64
	VATAmount    float64
	Total        float64
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	ConvertedAt  *time.Time
}

// EffectiveStatus derives the status to display: a pending invoice whose due
// date has passed reads as overdue. The stored status is never rewritten.
func (d *Document) EffectiveStatus(now time.Time) Status {
	if d.Type == TypeInvoice && d.Status == StatusPending && !d.DueDate.IsZero() && d.DueDate.Before(now) {
		return StatusOverdue
	}

	return d.Status
}

// ComputeTotals derives subtotal, VAT amount and total from the items at full
// precision. Rounding to 2 decimals happens at render time only.
func ComputeTotals(items []Item, vatRate float64) (subtotal, vatAmount, total float64) {
	for _, it := range items {
		subtotal += it.Total()
	}

	vatAmount = subtotal * vatRate / 100
	total = subtotal + vatAmount

	return subtotal, vatAmount, total
}
