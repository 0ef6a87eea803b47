package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prodvi/backend/models"
	"gorm.io/gorm"
)

// ErrDuplicateReview indicates a reviewer already reviewed this reviewee on
// this form. Reviews are immutable; the original row is left untouched.
var ErrDuplicateReview = errors.New("review already exists for this form, reviewer and reviewee")

// CreatePeerReview persists a new review. The (form, reviewer, reviewee)
// triple is unique; a second submission is rejected with ErrDuplicateReview.
func (r *GORMRepository) CreatePeerReview(ctx context.Context, review *models.PeerReview) error {
	existing, err := r.GetPeerReview(ctx, review.FormID, review.ReviewerID, review.RevieweeID)
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Warn("Duplicate peer review rejected", "form_id", review.FormID, "reviewer_id", review.ReviewerID, "reviewee_id", review.RevieweeID)
		return ErrDuplicateReview
	}

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		slog.Error("Failed to create peer review", "error", err)
		return err
	}
	slog.Info("Peer review created", "review_id", review.ID, "form_id", review.FormID, "reviewee_id", review.RevieweeID)
	return nil
}

func (r *GORMRepository) GetPeerReview(ctx context.Context, formID, reviewerID, revieweeID string) (*models.PeerReview, error) {
	var review models.PeerReview
	err := r.db.WithContext(ctx).
		Where("form_id = ? AND reviewer_id = ? AND reviewee_id = ?", formID, reviewerID, revieweeID).
		First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get peer review", "error", err, "form_id", formID)
		return nil, err
	}
	return &review, nil
}

// GetReviewsForReviewee returns all reviews of an employee on a form in
// submission order.
func (r *GORMRepository) GetReviewsForReviewee(ctx context.Context, formID, revieweeID string) ([]models.PeerReview, error) {
	var reviews []models.PeerReview
	err := r.db.WithContext(ctx).
		Where("form_id = ? AND reviewee_id = ?", formID, revieweeID).
		Order("submitted_at").
		Find(&reviews).Error
	if err != nil {
		slog.Error("Failed to get reviews for reviewee", "error", err, "form_id", formID, "reviewee_id", revieweeID)
		return nil, err
	}
	return reviews, nil
}

// CountDistinctReviewers counts how many distinct assigned reviewers have
// reviewed an employee on a form. Completion gating compares this against
// N-1, so reviewers outside the assignment set must not count.
func (r *GORMRepository) CountDistinctReviewers(ctx context.Context, formID, revieweeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PeerReview{}).
		Joins("JOIN form_assignments ON form_assignments.form_id = peer_reviews.form_id AND form_assignments.employee_id = peer_reviews.reviewer_id").
		Where("peer_reviews.form_id = ? AND peer_reviews.reviewee_id = ? AND form_assignments.deleted_at IS NULL", formID, revieweeID).
		Distinct("peer_reviews.reviewer_id").
		Count(&count).Error
	if err != nil {
		slog.Error("Failed to count distinct reviewers", "error", err, "form_id", formID, "reviewee_id", revieweeID)
		return 0, err
	}
	return count, nil
}

// Summary operations

func (r *GORMRepository) GetSummary(ctx context.Context, employeeID, formID string) (*models.EmployeeSummary, error) {
	var summary models.EmployeeSummary
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND form_id = ?", employeeID, formID).
		First(&summary).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get employee summary", "error", err, "employee_id", employeeID, "form_id", formID)
		return nil, err
	}
	return &summary, nil
}

// GetOrCreateSummary returns the summary row for (employee, form), creating
// an empty one if none exists yet. At most one row ever exists per pair.
func (r *GORMRepository) GetOrCreateSummary(ctx context.Context, employeeID, formID string) (*models.EmployeeSummary, error) {
	summary, err := r.GetSummary(ctx, employeeID, formID)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		return summary, nil
	}

	summary = &models.EmployeeSummary{
		EmployeeID: employeeID,
		FormID:     formID,
	}
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		slog.Error("Failed to create employee summary", "error", err, "employee_id", employeeID, "form_id", formID)
		return nil, err
	}
	slog.Info("Employee summary created", "summary_id", summary.ID, "employee_id", employeeID, "form_id", formID)
	return summary, nil
}

func (r *GORMRepository) SaveSummary(ctx context.Context, summary *models.EmployeeSummary) error {
	if err := r.db.WithContext(ctx).Save(summary).Error; err != nil {
		slog.Error("Failed to save employee summary", "error", err, "summary_id", summary.ID)
		return err
	}
	slog.Info("Employee summary saved", "summary_id", summary.ID, "employee_id", summary.EmployeeID)
	return nil
}
