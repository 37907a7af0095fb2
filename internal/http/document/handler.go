package document

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bildev/facturepro/internal/auth"
	"github.com/bildev/facturepro/internal/document"
	"github.com/bildev/facturepro/internal/importitems"
	"github.com/bildev/facturepro/internal/supplier"
)

type Handler struct {
	docs      *document.Service
	suppliers *supplier.Service
}

func NewHandler(docs *document.Service, suppliers *supplier.Service) *Handler {
	return &Handler{docs: docs, suppliers: suppliers}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/parse-items", h.parseItems)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/convert", h.convert)
}

type itemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createDocumentRequest struct {
	Type        document.Type `json:"type"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	Date        string        `json:"date"`
	DueDate     string        `json:"due_date,omitempty"`
	Items       []itemRequest `json:"items"`
	VATRate     float64       `json:"vat_rate"`
	Notes       string        `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var dueDate time.Time

	if req.DueDate != "" {
		dueDate, err = time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			http.Error(w, "invalid due date", http.StatusBadRequest)
			return
		}
	}

	sup, err := h.suppliers.Get(r.Context(), supplierID)
	if err != nil {
		http.Error(w, "Erreur lors de la création du document. Veuillez réessayer.", http.StatusInternalServerError)
		return
	}

	items := make([]document.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = document.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	doc, err := h.docs.Create(r.Context(), document.CreateParams{
		Type:         req.Type,
		SupplierID:   sup.ID,
		SupplierName: sup.DisplayName(),
		Company:      sup.CompanySnapshot(),
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		Date:         date,
		DueDate:      dueDate,
		Items:        items,
		VATRate:      req.VATRate,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, document.ErrNoItems) ||
			errors.Is(err, document.ErrInvalidItem) ||
			errors.Is(err, document.ErrInvalidVATRate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "Erreur lors de la création du document. Veuillez réessayer.", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(doc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docs, err := h.docs.List(r.Context(), supplierID)
	if err != nil {
		http.Error(w, "Erreur de chargement des documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(docs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// owned loads the document from the URL and verifies it belongs to the
// authenticated supplier. Foreign documents read as not found.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*document.Document, bool) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	doc, err := h.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if doc.SupplierID != supplierID {
		http.Error(w, "document not found", http.StatusNotFound)
		return nil, false
	}

	return doc, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.owned(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(doc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status document.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.docs.UpdateStatus(r.Context(), doc.ID, req.Status); err != nil {
		if errors.Is(err, document.ErrInvalidTransition) || errors.Is(err, document.ErrNotInvoice) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, "Erreur lors de la mise à jour du statut. Veuillez réessayer.", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.docs.ConvertToInvoice(r.Context(), doc.ID); err != nil {
		if errors.Is(err, document.ErrNotQuote) {
			http.Error(w, "document is not a quote", http.StatusConflict)
			return
		}

		http.Error(w, "Erreur lors de la conversion du devis. Veuillez réessayer.", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.docs.Delete(r.Context(), doc.ID); err != nil {
		http.Error(w, "Erreur lors de la suppression du document. Veuillez réessayer.", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type parsedItemsResponse struct {
	Items  []itemRequest     `json:"items"`
	Errors []lineErrResponse `json:"errors,omitempty"`
}

type lineErrResponse struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// parseItems turns an uploaded CSV into document items the client can drop
// into the creation form. Nothing is persisted.
func (h *Handler) parseItems(w http.ResponseWriter, r *http.Request) {
	items, lineErrs, err := importitems.Parse(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := parsedItemsResponse{Items: make([]itemRequest, len(items))}

	for i, it := range items {
		resp.Items[i] = itemRequest{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	for _, le := range lineErrs {
		resp.Errors = append(resp.Errors, lineErrResponse{Line: le.Line, Error: le.Err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
