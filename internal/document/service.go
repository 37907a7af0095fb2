package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	// CreateDocument allocates the document identifier and persists the
	// record. The allocation is serialized per type+period so concurrent
	// creations receive distinct consecutive sequence numbers. On success
	// doc.ID and doc.CreatedAt are populated.
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, supplierID uuid.UUID) ([]*Document, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ConvertToInvoice(ctx context.Context, id string) error
	DeleteDocument(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type         Type
	SupplierID   uuid.UUID
	SupplierName string
	Company      CompanyInfo
	ClientName   string
	ClientEmail  string
	Date         time.Time
	DueDate      time.Time
	Items        []Item
	VATRate      float64
	Notes        string
}

const defaultDueDays = 30

// Create validates the draft, computes the stored totals and persists the
// document with a freshly allocated identifier. New documents always start
// pending.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Document, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("unknown document type %q", params.Type)
	}

	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	for _, it := range params.Items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return nil, ErrInvalidItem
		}
	}

	if params.VATRate < 0 || params.VATRate > 100 {
		return nil, ErrInvalidVATRate
	}

	subtotal, vatAmount, total := ComputeTotals(params.Items, params.VATRate)

	dueDate := params.DueDate
	if dueDate.IsZero() && params.Type == TypeInvoice {
		dueDate = params.Date.AddDate(0, 0, defaultDueDays)
	}

	doc := &Document{
		Type:         params.Type,
		Status:       StatusPending,
		SupplierID:   params.SupplierID,
		SupplierName: params.SupplierName,
		Company:      params.Company,
		ClientName:   params.ClientName,
		ClientEmail:  params.ClientEmail,
		Date:         params.Date,
		DueDate:      dueDate,
		Items:        params.Items,
		Subtotal:     subtotal,
		VATRate:      params.VATRate,
		VATAmount:    vatAmount,
		Total:        total,
		Notes:        params.Notes,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetDocument(ctx, id)
}

// List returns a supplier's documents ordered by creation time, newest first.
func (s *Service) List(ctx context.Context, supplierID uuid.UUID) ([]*Document, error) {
	return s.repo.ListDocuments(ctx, supplierID)
}

// UpdateStatus applies a status transition after validating it against the
// status machine. Only invoices have status semantics.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if doc.Type != TypeInvoice {
		return ErrNotInvoice
	}

	if !CanTransition(doc.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, doc.Status, status)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// ConvertToInvoice turns a quote into a pending invoice and stamps the
// conversion time. The end state is the same however often the conversion
// runs, but re-converting an invoice is rejected rather than silently
// re-applied.
func (s *Service) ConvertToInvoice(ctx context.Context, id string) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if doc.Type != TypeQuote {
		return ErrNotQuote
	}

	return s.repo.ConvertToInvoice(ctx, id)
}

// Delete removes the document permanently. There is no tombstone.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteDocument(ctx, id)
}
