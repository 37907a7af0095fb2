package supplier

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bildev/facturepro/internal/document"
)

var (
	ErrNotFound           = errors.New("supplier not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Supplier is an authenticated issuer of documents. Its company fields are
// the live profile; documents copy them at creation time and never re-sync.
type Supplier struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CompanyName  string
	SIREN        string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// DisplayName is the name stamped onto documents as the supplier name.
func (s *Supplier) DisplayName() string {
	if s.FirstName == "" && s.LastName == "" {
		return s.CompanyName
	}

	return s.FirstName + " " + s.LastName
}

// CompanySnapshot builds the creation-time company block copied onto a new
// document.
func (s *Supplier) CompanySnapshot() document.CompanyInfo {
	return document.CompanyInfo{
		Name:    s.CompanyName,
		SIREN:   s.SIREN,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
