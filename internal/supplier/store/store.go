package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bildev/facturepro/internal/supplier"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectSupplierColumns = `
	id, email, password_hash, first_name, last_name,
	company_name, siren, phone, address, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanSupplier(s scanner) (*supplier.Supplier, error) {
	var sup supplier.Supplier

	if err := s.Scan(
		&sup.ID, &sup.Email, &sup.PasswordHash, &sup.FirstName, &sup.LastName,
		&sup.CompanyName, &sup.SIREN, &sup.Phone, &sup.Address, &sup.CreatedAt, &sup.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &sup, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (email, password_hash, first_name, last_name, company_name, siren, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sup.Email, sup.PasswordHash, sup.FirstName, sup.LastName,
		sup.CompanyName, sup.SIREN, sup.Phone, sup.Address,
	).Scan(&sup.ID, &sup.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating supplier: %w", err)
	}

	return nil
}

func (s *Store) GetSupplier(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	query := `SELECT ` + selectSupplierColumns + ` FROM suppliers WHERE id = $1`

	sup, err := scanSupplier(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return sup, nil
}

func (s *Store) GetSupplierByEmail(ctx context.Context, email string) (*supplier.Supplier, error) {
	query := `SELECT ` + selectSupplierColumns + ` FROM suppliers WHERE email = $1`

	sup, err := scanSupplier(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier by email: %w", err)
	}

	return sup, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	query := `
		UPDATE suppliers
		SET email = $1, first_name = $2, last_name = $3, company_name = $4,
		    siren = $5, phone = $6, address = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		sup.Email, sup.FirstName, sup.LastName, sup.CompanyName,
		sup.SIREN, sup.Phone, sup.Address, sup.ID,
	)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return supplier.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	return nil
}
