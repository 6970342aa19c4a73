// Package importfile handles spreadsheet uploads for bulk imports.
package importfile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kpapadakis/emporos/internal/importer"
	"github.com/kpapadakis/emporos/internal/importer/tabular"
)

const maxUploadSize = 5 << 20 // matches the frontend's 5MB cap

type importFunc func(ctx context.Context, filename string, r io.Reader) (*importer.Result, error)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/customers", h.importCustomers)
	r.Post("/products", h.importProducts)
}

func (h *Handler) importCustomers(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, h.svc.ImportCustomers)
}

func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, h.svc.ImportProducts)
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request, run importFunc) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := run(r.Context(), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, tabular.ErrUnsupportedFormat),
			errors.Is(err, importer.ErrEmptyFile):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
