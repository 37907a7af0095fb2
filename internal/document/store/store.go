package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/bildev/facturepro/internal/document"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// itemRecord is the JSONB shape of a line item. A JSON array keeps the
// display order of the items.
type itemRecord struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func marshalItems(items []document.Item) ([]byte, error) {
	records := make([]itemRecord, len(items))
	for i, it := range items {
		records[i] = itemRecord{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	return json.Marshal(records)
}

func unmarshalItems(raw []byte) ([]document.Item, error) {
	var records []itemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	items := make([]document.Item, len(records))
	for i, r := range records {
		items[i] = document.Item{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
	}

	return items, nil
}

const selectDocumentColumns = `
	d.id, d.type, d.status, d.supplier_id, d.supplier_name,
	d.company_name, d.company_siren, d.company_phone, d.company_email, d.company_address,
	d.client_name, d.client_email, d.date, d.due_date, d.items,
	d.subtotal, d.vat_rate, d.vat_amount, d.total, d.notes,
	d.created_at, d.updated_at, d.converted_at
`

// scanDocument reads a document row and returns a populated Document.
// Expected column order matches selectDocumentColumns.
func scanDocument(s scanner) (*document.Document, error) {
	var doc document.Document

	var typeStr, statusStr string

	var notes sql.NullString

	var rawItems []byte

	if err := s.Scan(
		&doc.ID, &typeStr, &statusStr, &doc.SupplierID, &doc.SupplierName,
		&doc.Company.Name, &doc.Company.SIREN, &doc.Company.Phone, &doc.Company.Email, &doc.Company.Address,
		&doc.ClientName, &doc.ClientEmail, &doc.Date, &doc.DueDate, &rawItems,
		&doc.Subtotal, &doc.VATRate, &doc.VATAmount, &doc.Total, &notes,
		&doc.CreatedAt, &doc.UpdatedAt, &doc.ConvertedAt,
	); err != nil {
		return nil, err
	}

	doc.Type = document.Type(typeStr)
	doc.Status = document.Status(statusStr)
	doc.Notes = notes.String

	items, err := unmarshalItems(rawItems)
	if err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	doc.Items = items

	return &doc, nil
}

// allocationLockKey derives the advisory lock key serializing identifier
// allocation for one document type in one period.
func allocationLockKey(prefix, period string) int64 {
	h := fnv.New64a()
	h.Write([]byte(prefix))
	h.Write([]byte{0})
	h.Write([]byte(period))

	return int64(h.Sum64())
}

// CreateDocument allocates the next identifier for the document's type and
// inserts the record. The read-latest-then-increment runs inside a
// transaction holding an advisory lock keyed by type and period, so two
// concurrent creations of the same type serialize and receive consecutive
// sequence numbers instead of colliding.
func (s *Store) CreateDocument(ctx context.Context, doc *document.Document) error {
	now := s.now()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	period := fmt.Sprintf("%d%02d", now.Year(), int(now.Month()))

	lockKey := allocationLockKey(doc.Type.Prefix(), period)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		return fmt.Errorf("acquiring allocation lock: %w", err)
	}

	var lastID string

	err = dbTx.QueryRowContext(ctx,
		`SELECT id FROM documents WHERE type = $1 ORDER BY created_at DESC LIMIT 1`,
		doc.Type,
	).Scan(&lastID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("finding latest document: %w", err)
	}

	doc.ID = document.NextID(doc.Type, lastID, now)

	rawItems, err := marshalItems(doc.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO documents (
			id, type, status, supplier_id, supplier_name,
			company_name, company_siren, company_phone, company_email, company_address,
			client_name, client_email, date, due_date, items,
			subtotal, vat_rate, vat_amount, total, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		RETURNING created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		doc.ID, doc.Type, doc.Status, doc.SupplierID, doc.SupplierName,
		doc.Company.Name, doc.Company.SIREN, doc.Company.Phone, doc.Company.Email, doc.Company.Address,
		doc.ClientName, doc.ClientEmail, doc.Date, doc.DueDate, rawItems,
		doc.Subtotal, doc.VATRate, doc.VATAmount, doc.Total, doc.Notes,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + ` FROM documents d WHERE d.id = $1`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return doc, nil
}

// ListDocuments returns a supplier's documents ordered by creation time
// descending, mirroring the dashboard feed.
func (s *Store) ListDocuments(ctx context.Context, supplierID uuid.UUID) ([]*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + `
		FROM documents d
		WHERE d.supplier_id = $1
		ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}

	return docs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status document.Status) error {
	query := `
		UPDATE documents
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return document.ErrNotFound
	}

	return nil
}

func (s *Store) ConvertToInvoice(ctx context.Context, id string) error {
	query := `
		UPDATE documents
		SET type = $1, status = $2, converted_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, document.TypeInvoice, document.StatusPending, id)
	if err != nil {
		return fmt.Errorf("converting quote: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return document.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	return nil
}
