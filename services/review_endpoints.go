package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prodvi/backend/ml"
	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
	"gorm.io/datatypes"
)

type ReviewEndpoints struct {
	repo       *repository.GORMRepository
	analysis   *ReviewAnalysisService
	aggregator *SummaryAggregator
}

func NewReviewEndpoints(repo *repository.GORMRepository, analysis *ReviewAnalysisService, aggregator *SummaryAggregator) *ReviewEndpoints {
	return &ReviewEndpoints{
		repo:       repo,
		analysis:   analysis,
		aggregator: aggregator,
	}
}

func (e *ReviewEndpoints) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/question", e.AnalyzeQuestionHandler)
		r.Post("/answer", e.RateAnswerHandler)
	})
	r.Post("/reviews", e.SubmitReviewHandler)
}

type AnalyzeQuestionRequest struct {
	Question string `json:"question"`
}

type AnalyzeQuestionResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func (e *ReviewEndpoints) AnalyzeQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	category, confidence, err := e.analysis.AnalyzeQuestion(req.Question)
	if err != nil {
		slog.Error("Failed to analyze question", "error", err)
		http.Error(w, "Failed to analyze question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeQuestionResponse{
		Category:   string(category),
		Confidence: confidence,
	})
}

type RateAnswerRequest struct {
	Category string `json:"category"`
	Answer   string `json:"answer"`
}

type RateAnswerResponse struct {
	Category   string    `json:"category"`
	Prediction string    `json:"prediction"`
	Rating     ml.Rating `json:"rating"`
}

func (e *ReviewEndpoints) RateAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var req RateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Category == "" || req.Answer == "" {
		http.Error(w, "Category and answer are required", http.StatusBadRequest)
		return
	}

	rating, err := e.analysis.RateAnswer(ml.Category(req.Category), req.Answer)
	if err != nil {
		if ml.IsColumnNotFound(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to rate answer", "error", err, "category", req.Category)
		http.Error(w, "Failed to rate answer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RateAnswerResponse{
		Category:   req.Category,
		Prediction: rating.Prediction(),
		Rating:     rating,
	})
}

type SubmitReviewRequest struct {
	FormID     string            `json:"form_id"`
	ReviewerID string            `json:"reviewer_id"`
	RevieweeID string            `json:"reviewee_id"`
	Responses  map[string]string `json:"responses"`
}

type SubmitReviewResponse struct {
	Review  models.PeerReview `json:"review"`
	Message string            `json:"message"`
}

// SubmitReviewHandler persists a new peer review with its per-question ML
// analysis, then runs the completion check for the reviewee. The review is
// saved even when summary generation fails.
func (e *ReviewEndpoints) SubmitReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FormID == "" || req.ReviewerID == "" || req.RevieweeID == "" {
		http.Error(w, "form_id, reviewer_id and reviewee_id are required", http.StatusBadRequest)
		return
	}
	if req.ReviewerID == req.RevieweeID {
		http.Error(w, "Employees cannot review themselves", http.StatusBadRequest)
		return
	}

	form, err := e.repo.GetFormWithQuestions(r.Context(), req.FormID)
	if err != nil {
		http.Error(w, "Failed to load form", http.StatusInternalServerError)
		return
	}
	if form == nil {
		http.Error(w, "Form not found", http.StatusNotFound)
		return
	}

	// Only assigned employees participate; an outsider's review would
	// corrupt the N-1 completion count.
	for _, check := range []struct {
		employeeID string
		message    string
	}{
		{req.ReviewerID, "Reviewer is not assigned to this form"},
		{req.RevieweeID, "Reviewee is not assigned to this form"},
	} {
		assigned, err := e.repo.IsAssigned(r.Context(), req.FormID, check.employeeID)
		if err != nil {
			http.Error(w, "Failed to check form assignment", http.StatusInternalServerError)
			return
		}
		if !assigned {
			http.Error(w, check.message, http.StatusForbidden)
			return
		}
	}

	responses := make([]models.ResponseEntry, 0, len(form.Questions))
	for _, question := range form.Questions {
		responses = append(responses, models.ResponseEntry{
			Question: question.Text,
			Answer:   req.Responses[question.Text],
		})
	}

	analysis := e.analysis.Analyze(r.Context(), responses)

	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		http.Error(w, "Failed to encode responses", http.StatusInternalServerError)
		return
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		http.Error(w, "Failed to encode analysis", http.StatusInternalServerError)
		return
	}

	review := &models.PeerReview{
		FormID:      req.FormID,
		ReviewerID:  req.ReviewerID,
		RevieweeID:  req.RevieweeID,
		Responses:   datatypes.JSON(responsesJSON),
		Analysis:    datatypes.JSON(analysisJSON),
		SubmittedAt: time.Now(),
	}

	if err := e.repo.CreatePeerReview(r.Context(), review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			http.Error(w, "Review already submitted for this colleague", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}

	// The review is committed at this point; a summary failure must not
	// surface as a submission failure.
	if _, err := e.aggregator.CheckAndSummarize(r.Context(), req.RevieweeID, req.FormID); err != nil {
		slog.Error("Summary check after submission failed", "error", err, "reviewee_id", req.RevieweeID, "form_id", req.FormID)
	}

	writeJSON(w, http.StatusCreated, SubmitReviewResponse{
		Review:  *review,
		Message: "Review submitted successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
