package models

import (
	"time"

	"gorm.io/gorm"
)

// EmployeeSummary holds the generated performance narrative for one employee
// on one form. Created empty when completion is first detected; Narrative is
// filled in once the generation call succeeds. A refresh overwrites the row
// in place, no history is kept.
type EmployeeSummary struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID   string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_summary_pair" json:"employee_id"`
	FormID       string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_summary_pair" json:"form_id"`
	DocumentPath string         `gorm:"size:500" json:"document_path,omitempty"`
	Narrative    *string        `gorm:"type:text" json:"narrative,omitempty"`
	GeneratedAt  *time.Time     `json:"generated_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employee Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Form     EvaluationForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
}

// HasNarrative reports whether a non-empty narrative has been generated.
func (s *EmployeeSummary) HasNarrative() bool {
	return s.Narrative != nil && *s.Narrative != ""
}

// QuestionFeedback collects every reviewer's answer to one question. Answers
// are deliberately bare strings: reviewer identity is stripped while the
// document is assembled so nothing downstream can attribute a comment.
type QuestionFeedback struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// FeedbackDocument is the anonymized, structured document handed to the
// narrative generator and persisted alongside the summary row.
type FeedbackDocument struct {
	Name      string             `json:"name"`
	Questions []QuestionFeedback `json:"questions"`
}
