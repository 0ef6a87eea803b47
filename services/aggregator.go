package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
)

// SummaryAggregator watches for completion of an employee's peer reviews on
// a form and produces their narrative summary. With N employees assigned to
// a form, the employee is complete once the other N-1 have each submitted a
// review of them.
type SummaryAggregator struct {
	repo      *repository.GORMRepository
	narrative NarrativeGenerator
	mediaDir  string

	// Per-(employee, form) locks. Without these, concurrent submissions of
	// the final two reviews can both observe completion and race to generate
	// the same summary.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewSummaryAggregator(repo *repository.GORMRepository, narrative NarrativeGenerator, mediaDir string) *SummaryAggregator {
	return &SummaryAggregator{
		repo:      repo,
		narrative: narrative,
		mediaDir:  mediaDir,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (a *SummaryAggregator) lockFor(employeeID, formID string) *sync.Mutex {
	a.locksMu.Lock()
	defer a.locksMu.Unlock()

	key := employeeID + ":" + formID
	lock, ok := a.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[key] = lock
	}
	return lock
}

// CheckAndSummarize generates the employee's summary if their reviews are
// complete. Returns nil without error while reviews are still outstanding.
// Once a non-empty narrative exists the call is an idempotent no-op that
// returns the existing row untouched.
func (a *SummaryAggregator) CheckAndSummarize(ctx context.Context, employeeID, formID string) (*models.EmployeeSummary, error) {
	lock := a.lockFor(employeeID, formID)
	lock.Lock()
	defer lock.Unlock()

	assigned, err := a.repo.IsAssigned(ctx, formID, employeeID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, fmt.Errorf("employee %s is not assigned to form %s", employeeID, formID)
	}

	assignedCount, err := a.repo.CountAssignments(ctx, formID)
	if err != nil {
		return nil, err
	}
	if assignedCount < 2 {
		// A single participant has no peers, so a "complete" summary would
		// be built from zero reviews.
		slog.Info("Form has no peer reviewers, no summary generated",
			"employee_id", employeeID,
			"form_id", formID)
		return nil, nil
	}
	reviewerCount, err := a.repo.CountDistinctReviewers(ctx, formID, employeeID)
	if err != nil {
		return nil, err
	}

	if reviewerCount < assignedCount-1 {
		slog.Info("Reviews incomplete, no summary generated",
			"employee_id", employeeID,
			"form_id", formID,
			"reviewers", reviewerCount,
			"expected", assignedCount-1)
		return nil, nil
	}

	summary, err := a.repo.GetSummary(ctx, employeeID, formID)
	if err != nil {
		return nil, err
	}
	if summary != nil && summary.HasNarrative() {
		return summary, nil
	}

	slog.Info("Reviews complete, generating summary",
		"employee_id", employeeID,
		"form_id", formID,
		"reviewers", reviewerCount)
	return a.generate(ctx, employeeID, formID)
}

// RefreshSummary regenerates the document and narrative unconditionally,
// overwriting prior output and stamping a new generation time. Unlike the
// completion check, a failed narrative call here never retries on its own;
// the caller refreshes again when ready.
func (a *SummaryAggregator) RefreshSummary(ctx context.Context, employeeID, formID string) (*models.EmployeeSummary, error) {
	lock := a.lockFor(employeeID, formID)
	lock.Lock()
	defer lock.Unlock()

	assigned, err := a.repo.IsAssigned(ctx, formID, employeeID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, fmt.Errorf("employee %s is not assigned to form %s", employeeID, formID)
	}

	slog.Info("Summary refresh requested", "employee_id", employeeID, "form_id", formID)
	return a.generate(ctx, employeeID, formID)
}

// generate assembles the feedback document, persists it, and requests the
// narrative. The document is saved before the narrative call so a generation
// failure loses nothing; the narrative field is simply left empty.
func (a *SummaryAggregator) generate(ctx context.Context, employeeID, formID string) (*models.EmployeeSummary, error) {
	doc, err := a.BuildDocument(ctx, employeeID, formID)
	if err != nil {
		return nil, err
	}

	summary, err := a.repo.GetOrCreateSummary(ctx, employeeID, formID)
	if err != nil {
		return nil, err
	}

	docPath, err := a.writeDocument(employeeID, formID, doc)
	if err != nil {
		slog.Error("Failed to write feedback document", "error", err, "employee_id", employeeID)
	} else {
		summary.DocumentPath = docPath
	}
	if err := a.repo.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}

	narrative, err := a.narrative.Generate(ctx, doc)
	if err != nil {
		slog.Error("Narrative generation failed, document persisted without narrative",
			"error", err,
			"employee_id", employeeID,
			"form_id", formID)
		return summary, fmt.Errorf("narrative generation failed: %w", err)
	}

	now := time.Now()
	summary.Narrative = &narrative
	summary.GeneratedAt = &now
	if err := a.repo.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// BuildDocument groups every review's answers by question text in form
// order. Reviewer identity is used only to fetch the reviews; the document
// carries bare answer strings so nothing downstream can attribute a comment.
func (a *SummaryAggregator) BuildDocument(ctx context.Context, employeeID, formID string) (*models.FeedbackDocument, error) {
	employee, err := a.repo.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("employee %s not found", employeeID)
	}

	form, err := a.repo.GetFormWithQuestions(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, fmt.Errorf("form %s not found", formID)
	}

	reviews, err := a.repo.GetReviewsForReviewee(ctx, formID, employeeID)
	if err != nil {
		return nil, err
	}

	// Responses are stored in form-question order, so answers pool by
	// position. Two questions sharing the same text keep separate buckets.
	answersByPosition := make([][]string, len(form.Questions))
	for _, review := range reviews {
		var responses []models.ResponseEntry
		if err := json.Unmarshal(review.Responses, &responses); err != nil {
			slog.Error("Failed to decode review responses", "error", err, "review_id", review.ID)
			continue
		}
		for i, response := range responses {
			if i >= len(answersByPosition) || response.Answer == "" {
				continue
			}
			answersByPosition[i] = append(answersByPosition[i], response.Answer)
		}
	}

	doc := &models.FeedbackDocument{Name: employee.Name}
	for i, question := range form.Questions {
		doc.Questions = append(doc.Questions, models.QuestionFeedback{
			Question: question.Text,
			Answers:  answersByPosition[i],
		})
	}

	return doc, nil
}

func (a *SummaryAggregator) writeDocument(employeeID, formID string, doc *models.FeedbackDocument) (string, error) {
	dir := filepath.Join(a.mediaDir, "summaries")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create summaries directory: %w", err)
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode feedback document: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", employeeID, formID))
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write feedback document: %w", err)
	}

	slog.Info("Feedback document written", "path", path)
	return path, nil
}
