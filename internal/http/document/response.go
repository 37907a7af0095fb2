package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/bildev/facturepro/internal/document"
)

type companyInfoResponse struct {
	Name    string `json:"name"`
	SIREN   string `json:"siren"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type itemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type documentResponse struct {
	ID              string              `json:"id"`
	Type            document.Type       `json:"type"`
	Status          document.Status     `json:"status"`
	EffectiveStatus document.Status     `json:"effective_status"`
	SupplierID      uuid.UUID           `json:"supplier_id"`
	SupplierName    string              `json:"supplier_name"`
	Company         companyInfoResponse `json:"company_info"`
	ClientName      string              `json:"client_name"`
	ClientEmail     string              `json:"client_email"`
	Date            time.Time           `json:"date"`
	DueDate         time.Time           `json:"due_date"`
	Items           []itemResponse      `json:"items"`
	Subtotal        float64             `json:"subtotal"`
	VATRate         float64             `json:"vat_rate"`
	VATAmount       float64             `json:"vat_amount"`
	Total           float64             `json:"total"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at,omitempty"`
	ConvertedAt     *time.Time          `json:"converted_at,omitempty"`
}

func toResponse(doc *document.Document) documentResponse {
	items := make([]itemResponse, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = itemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	return documentResponse{
		ID:              doc.ID,
		Type:            doc.Type,
		Status:          doc.Status,
		EffectiveStatus: doc.EffectiveStatus(time.Now()),
		SupplierID:      doc.SupplierID,
		SupplierName:    doc.SupplierName,
		Company: companyInfoResponse{
			Name:    doc.Company.Name,
			SIREN:   doc.Company.SIREN,
			Phone:   doc.Company.Phone,
			Email:   doc.Company.Email,
			Address: doc.Company.Address,
		},
		ClientName:  doc.ClientName,
		ClientEmail: doc.ClientEmail,
		Date:        doc.Date,
		DueDate:     doc.DueDate,
		Items:       items,
		Subtotal:    doc.Subtotal,
		VATRate:     doc.VATRate,
		VATAmount:   doc.VATAmount,
		Total:       doc.Total,
		Notes:       doc.Notes,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		ConvertedAt: doc.ConvertedAt,
	}
}

func toResponseList(docs []*document.Document) []documentResponse {
	resp := make([]documentResponse, len(docs))
	for i, doc := range docs {
		resp[i] = toResponse(doc)
	}

	return resp
}
