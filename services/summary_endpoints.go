package services

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
)

type SummaryEndpoints struct {
	repo       *repository.GORMRepository
	aggregator *SummaryAggregator
}

func NewSummaryEndpoints(repo *repository.GORMRepository, aggregator *SummaryAggregator) *SummaryEndpoints {
	return &SummaryEndpoints{
		repo:       repo,
		aggregator: aggregator,
	}
}

func (e *SummaryEndpoints) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}/forms/{formID}/summary", func(r chi.Router) {
		r.Get("/", e.GetSummaryHandler)
		r.Post("/refresh", e.RefreshSummaryHandler)
	})
}

type SummaryResponse struct {
	Summary *models.EmployeeSummary `json:"summary,omitempty"`
	Message string                  `json:"message,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// GetSummaryHandler runs the completion check and returns the summary if
// the employee's reviews are complete.
func (e *SummaryEndpoints) GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	formID := chi.URLParam(r, "formID")
	if employeeID == "" || formID == "" {
		http.Error(w, "Employee ID and form ID are required", http.StatusBadRequest)
		return
	}

	summary, err := e.aggregator.CheckAndSummarize(r.Context(), employeeID, formID)
	if err != nil && summary == nil {
		slog.Error("Summary check failed", "error", err, "employee_id", employeeID, "form_id", formID)
		http.Error(w, "Failed to check summary", http.StatusInternalServerError)
		return
	}
	if summary == nil {
		writeJSON(w, http.StatusNotFound, SummaryResponse{
			Message: "Reviews are not yet complete for this employee",
		})
		return
	}
	if err != nil {
		// Document persisted, narrative failed; the caller can refresh later.
		writeJSON(w, http.StatusBadGateway, SummaryResponse{
			Summary: summary,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{Summary: summary})
}

// RefreshSummaryHandler regenerates the summary unconditionally, blocking
// until the new narrative is obtained or fails.
func (e *SummaryEndpoints) RefreshSummaryHandler(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	formID := chi.URLParam(r, "formID")
	if employeeID == "" || formID == "" {
		http.Error(w, "Employee ID and form ID are required", http.StatusBadRequest)
		return
	}

	summary, err := e.aggregator.RefreshSummary(r.Context(), employeeID, formID)
	if err != nil && summary == nil {
		slog.Error("Summary refresh failed", "error", err, "employee_id", employeeID, "form_id", formID)
		http.Error(w, "Failed to refresh summary", http.StatusInternalServerError)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, SummaryResponse{
			Summary: summary,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary: summary,
		Message: "Summary regenerated",
	})
}
