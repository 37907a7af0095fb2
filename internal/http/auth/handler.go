package auth

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
	tokens    *auth.TokenService
}

func NewHandler(suppliers *supplier.Service, tokens *auth.TokenService) *Handler {
	return &Handler{suppliers: suppliers, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	SIREN       string `json:"siren"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type sessionResponse struct {
	Token    string          `json:"token"`
	Supplier profileResponse `json:"supplier"`
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

func toProfileResponse(sup *supplier.Supplier) profileResponse {
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

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sup, err := h.suppliers.Register(r.Context(), supplier.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		SIREN:       req.SIREN,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		if errors.Is(err, supplier.ErrEmailTaken) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}

		if errors.Is(err, supplier.ErrInvalidCredentials) {
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		http.Error(w, "registration failed", http.StatusInternalServerError)

		return
	}

	h.respondSession(w, http.StatusCreated, sup)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sup, err := h.suppliers.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, supplier.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		http.Error(w, "login failed", http.StatusInternalServerError)

		return
	}

	h.respondSession(w, http.StatusOK, sup)
}

func (h *Handler) respondSession(w http.ResponseWriter, status int, sup *supplier.Supplier) {
	token, err := h.tokens.Issue(sup.ID)
	if err != nil {
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(sessionResponse{
		Token:    token,
		Supplier: toProfileResponse(sup),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
