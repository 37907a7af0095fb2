package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bildev/facturepro/internal/auth"
	"github.com/bildev/facturepro/internal/document"
	"github.com/bildev/facturepro/internal/pdf"
)

type Handler struct {
	docs     *document.Service
	renderer *pdf.Renderer
}

func NewHandler(docs *document.Service, renderer *pdf.Renderer) *Handler {
	return &Handler{docs: docs, renderer: renderer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}/pdf", h.download)
}

// download streams the rendered PDF as an attachment. A render failure
// produces an error response and no partial file.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := auth.SupplierID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	doc, err := h.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if doc.SupplierID != supplierID {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	artifact, err := h.renderer.Render(doc)
	if err != nil {
		http.Error(w, "Erreur lors de la génération du PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.renderer.Filename(doc)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact)))

	if _, err := w.Write(artifact); err != nil {
		slog.Error("failed to write pdf response", "error", err)
	}
}
