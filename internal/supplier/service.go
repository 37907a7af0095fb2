package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=supplier
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	GetSupplierByEmail(ctx context.Context, email string) (*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	CompanyName string
	SIREN       string
	Phone       string
	Address     string
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*Supplier, error) {
	if params.Email == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.repo.GetSupplierByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	sup := &Supplier{
		Email:        params.Email,
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		CompanyName:  params.CompanyName,
		SIREN:        params.SIREN,
		Phone:        params.Phone,
		Address:      params.Address,
	}

	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}

	return sup, nil
}

// Authenticate checks the credentials and returns the supplier on success.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Supplier, error) {
	sup, err := s.repo.GetSupplierByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sup.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sup, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

type UpdateParams struct {
	FirstName   *string
	LastName    *string
	CompanyName *string
	SIREN       *string
	Phone       *string
	Address     *string
	Email       *string
}

// UpdateProfile edits the live profile. Existing documents keep the snapshot
// taken when they were created.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateParams) (*Supplier, error) {
	sup, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		sup.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		sup.LastName = *params.LastName
	}

	if params.CompanyName != nil {
		sup.CompanyName = *params.CompanyName
	}

	if params.SIREN != nil {
		sup.SIREN = *params.SIREN
	}

	if params.Phone != nil {
		sup.Phone = *params.Phone
	}

	if params.Address != nil {
		sup.Address = *params.Address
	}

	if params.Email != nil {
		sup.Email = *params.Email
	}

	if err := s.repo.UpdateSupplier(ctx, sup); err != nil {
		return nil, fmt.Errorf("updating supplier: %w", err)
	}

	return sup, nil
}

// Delete removes the supplier account. Documents cascade away with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSupplier(ctx, id)
}
