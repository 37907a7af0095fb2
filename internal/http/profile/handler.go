package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bildev/facturepro/internal/auth"
	"github.com/bildev/facturepro/internal/supplier"
)

type Handler struct {
	suppliers *supplier.Service
}

func NewHandler(suppliers *supplier.Service) *Handler {
	return &Handler{suppliers: suppliers}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Delete("/", h.delete)
}

type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	SIREN       string `json:"siren"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func toResponse(sup *supplier.Supplier) profileResponse {
	return profileResponse{
		ID:          sup.ID.String(),
		Email:       sup.Email,
		FirstName:   sup.FirstName,
		LastName:    sup.LastName,
		CompanyName: sup.CompanyName,
		SIREN:       sup.SIREN,
		Phone:       sup.Phone,
		Address:     sup.Address,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sup, err := h.suppliers.Get(r.Context(), supplierID)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sup)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	SIREN       *string `json:"siren,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sup, err := h.suppliers.UpdateProfile(r.Context(), supplierID, supplier.UpdateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		SIREN:       req.SIREN,
		Phone:       req.Phone,
		Address:     req.Address,
		Email:       req.Email,
	})
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}

		http.Error(w, "Erreur lors de la mise à jour du profil", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sup)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.suppliers.Delete(r.Context(), supplierID); err != nil {
		http.Error(w, "Erreur lors de la suppression du compte", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
