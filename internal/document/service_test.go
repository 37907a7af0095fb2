package document_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bildev/facturepro/internal/document"
)

var testSupplierID = uuid.MustParse("3f1f3f66-9f39-4a68-9f62-2f9ad20d7a11")

func validCreateParams() document.CreateParams {
	return document.CreateParams{
		Type:         document.TypeInvoice,
		SupplierID:   testSupplierID,
		SupplierName: "Bil Development",
		Company: document.CompanyInfo{
			Name:  "Bil Development",
			SIREN: "123456789",
			Email: "contact@bildev.fr",
		},
		ClientName:  "Société Dupont",
		ClientEmail: "compta@dupont.fr",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []document.Item{
			{Description: "Développement", Quantity: 3, UnitPrice: 450},
			{Description: "Maintenance", Quantity: 1, UnitPrice: 120},
		},
		VATRate: 20,
	}
}

func TestService_Create(t *testing.T) {
	repoErr := errors.New("connection reset")

	tests := []struct {
		name      string
		params    func() document.CreateParams
		setupMock func(m *MockHelper)
		check     func(t *testing.T, doc *document.Document, err error)
	}{
		{
			name:   "Success",
			params: validCreateParams,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().
					CreateDocument(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc *document.Document) error {
						doc.ID = "FAC-202503-0001"
						doc.CreatedAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
						return nil
					})
			},
			check: func(t *testing.T, doc *document.Document, err error) {
				require.NoError(t, err)
				assert.Equal(t, "FAC-202503-0001", doc.ID)
				assert.Equal(t, document.StatusPending, doc.Status)
				assert.InDelta(t, 1470, doc.Subtotal, 1e-9)
				assert.InDelta(t, 294, doc.VATAmount, 1e-9)
				assert.InDelta(t, 1764, doc.Total, 1e-9)
			},
		},
		{
			name: "InvoiceGetsDefaultDueDate",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.DueDate = time.Time{}
				return p
			},
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, doc *document.Document, err error) {
				require.NoError(t, err)
				assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), doc.DueDate)
			},
		},
		{
			name: "QuoteKeepsZeroDueDate",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.Type = document.TypeQuote
				return p
			},
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, doc *document.Document, err error) {
				require.NoError(t, err)
				assert.True(t, doc.DueDate.IsZero())
			},
		},
		{
			name: "UnknownType",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.Type = "receipt"
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.Error(t, err)
				assert.Nil(t, doc)
			},
		},
		{
			name: "NoItems",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.Items = nil
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, document.ErrNoItems)
				assert.Nil(t, doc)
			},
		},
		{
			name: "NegativeQuantity",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.Items[0].Quantity = -1
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, document.ErrInvalidItem)
			},
		},
		{
			name: "NegativeUnitPrice",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.Items[1].UnitPrice = -0.01
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, document.ErrInvalidItem)
			},
		},
		{
			name: "VATRateAbove100",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.VATRate = 120
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, document.ErrInvalidVATRate)
			},
		},
		{
			name: "NegativeVATRate",
			params: func() document.CreateParams {
				p := validCreateParams()
				p.VATRate = -1
				return p
			},
			setupMock: func(m *MockHelper) {},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, document.ErrInvalidVATRate)
			},
		},
		{
			name:   "RepositoryError",
			params: validCreateParams,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).Return(repoErr)
			},
			check: func(t *testing.T, doc *document.Document, err error) {
				assert.ErrorIs(t, err, repoErr)
				assert.Nil(t, doc)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := newMockHelper(t)
			tt.setupMock(helper)

			svc := document.NewService(helper.repo)
			doc, err := svc.Create(context.Background(), tt.params())

			tt.check(t, doc, err)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	const id = "FAC-202503-0001"

	invoice := func(status document.Status) *document.Document {
		return &document.Document{ID: id, Type: document.TypeInvoice, Status: status}
	}

	tests := []struct {
		name      string
		to        document.Status
		setupMock func(m *MockHelper)
		wantErr   error
	}{
		{
			name: "PendingToPaid",
			to:   document.StatusPaid,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(invoice(document.StatusPending), nil)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), id, document.StatusPaid).Return(nil)
			},
		},
		{
			name: "PaidBackToPending",
			to:   document.StatusPending,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(invoice(document.StatusPaid), nil)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), id, document.StatusPending).Return(nil)
			},
		},
		{
			name: "PendingToCancelled",
			to:   document.StatusCancelled,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(invoice(document.StatusPending), nil)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), id, document.StatusCancelled).Return(nil)
			},
		},
		{
			name: "CancelledIsTerminal",
			to:   document.StatusPaid,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(invoice(document.StatusCancelled), nil)
			},
			wantErr: document.ErrInvalidTransition,
		},
		{
			name: "OverdueIsNotAStoredTarget",
			to:   document.StatusOverdue,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(invoice(document.StatusPending), nil)
			},
			wantErr: document.ErrInvalidTransition,
		},
		{
			name: "QuoteHasNoStatus",
			to:   document.StatusPaid,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).
					Return(&document.Document{ID: id, Type: document.TypeQuote, Status: document.StatusPending}, nil)
			},
			wantErr: document.ErrNotInvoice,
		},
		{
			name: "NotFound",
			to:   document.StatusPaid,
			setupMock: func(m *MockHelper) {
				m.repo.EXPECT().GetDocument(gomock.Any(), id).Return(nil, document.ErrNotFound)
			},
			wantErr: document.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := newMockHelper(t)
			tt.setupMock(helper)

			svc := document.NewService(helper.repo)
			err := svc.UpdateStatus(context.Background(), id, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_ConvertToInvoice(t *testing.T) {
	const id = "DEV-202503-0002"

	t.Run("ConvertsQuote", func(t *testing.T) {
		helper := newMockHelper(t)
		helper.repo.EXPECT().GetDocument(gomock.Any(), id).
			Return(&document.Document{ID: id, Type: document.TypeQuote, Status: document.StatusPending}, nil)
		helper.repo.EXPECT().ConvertToInvoice(gomock.Any(), id).Return(nil)

		svc := document.NewService(helper.repo)
		assert.NoError(t, svc.ConvertToInvoice(context.Background(), id))
	})

	t.Run("RejectsInvoice", func(t *testing.T) {
		helper := newMockHelper(t)
		helper.repo.EXPECT().GetDocument(gomock.Any(), id).
			Return(&document.Document{ID: id, Type: document.TypeInvoice, Status: document.StatusPending}, nil)

		svc := document.NewService(helper.repo)
		assert.ErrorIs(t, svc.ConvertToInvoice(context.Background(), id), document.ErrNotQuote)
	})

	t.Run("NotFound", func(t *testing.T) {
		helper := newMockHelper(t)
		helper.repo.EXPECT().GetDocument(gomock.Any(), id).Return(nil, document.ErrNotFound)

		svc := document.NewService(helper.repo)
		assert.ErrorIs(t, svc.ConvertToInvoice(context.Background(), id), document.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	helper := newMockHelper(t)
	docs := []*document.Document{
		{ID: "FAC-202503-0002"},
		{ID: "FAC-202503-0001"},
	}
	helper.repo.EXPECT().ListDocuments(gomock.Any(), testSupplierID).Return(docs, nil)

	svc := document.NewService(helper.repo)
	got, err := svc.List(context.Background(), testSupplierID)

	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestService_Delete(t *testing.T) {
	helper := newMockHelper(t)
	helper.repo.EXPECT().DeleteDocument(gomock.Any(), "DEV-202503-0001").Return(nil)

	svc := document.NewService(helper.repo)
	assert.NoError(t, svc.Delete(context.Background(), "DEV-202503-0001"))
}

type MockHelper struct {
	repo *document.MockRepository
}

func newMockHelper(t *testing.T) *MockHelper {
	ctrl := gomock.NewController(t)

	return &MockHelper{repo: document.NewMockRepository(ctrl)}
}
