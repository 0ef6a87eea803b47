package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseEntry is one raw question/answer pair as submitted by a reviewer.
type ResponseEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerAnalysis is the ML result for a single answer: the competency
// category the question was bucketed into, the classifier's confidence, and
// either a predicted rating label or a serialized sentiment score. Error is
// set when analysis of this question failed; the rest of the batch is
// unaffected.
type AnswerAnalysis struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Prediction string  `json:"prediction,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// PeerReview records one employee's review of a colleague on a form. A
// reviewer reviews a given reviewee at most once per form; reviews are
// immutable once created. Responses holds the ordered raw answers, Analysis
// the ordered per-question ML results.
type PeerReview struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	FormID      string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_triple" json:"form_id"`
	ReviewerID  string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_triple" json:"reviewer_id"`
	RevieweeID  string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_triple" json:"reviewee_id"`
	Responses   datatypes.JSON `gorm:"type:jsonb" json:"responses"`
	Analysis    datatypes.JSON `gorm:"type:jsonb" json:"analysis"`
	SubmittedAt time.Time      `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Form     EvaluationForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Reviewer Employee       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee Employee       `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}
