package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bariskaantoprak-ui/ITSO/internal/repository"
	"github.com/bariskaantoprak-ui/ITSO/internal/service"
)

// CompanyHandler serves the member directory.
type CompanyHandler struct {
	svc *service.EventService
}

// NewCompanyHandler constructs a CompanyHandler.
func NewCompanyHandler(svc *service.EventService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// ListCompanies handles GET /companies
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Companies())
}

// GetCompany handles GET /companies/{id}
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Company(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company not found")
			return
		}
		internalError(w, r, "failed to get company", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
