package models

import (
	"time"

	"gorm.io/gorm"
)

// EvaluationForm is an admin-created review form with an ordered question
// list. Every assigned employee is expected to review every other assigned
// employee on the form.
type EvaluationForm struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Questions   []FormQuestion   `gorm:"foreignKey:FormID" json:"questions,omitempty"`
	Assignments []FormAssignment `gorm:"foreignKey:FormID" json:"assignments,omitempty"`
}

// FormQuestion is a single question on a form. Position fixes the order the
// questions are asked in; the analysis result and the feedback document both
// follow this order.
type FormQuestion struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	FormID    string         `gorm:"type:uuid;not null;index" json:"form_id"`
	Position  int            `gorm:"not null" json:"position"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Form EvaluationForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
}

// FormAssignment links an employee to a form they participate in. With N
// assignments on a form, each assigned employee is complete once the other
// N-1 have reviewed them.
type FormAssignment struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	FormID     string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_form_employee" json:"form_id"`
	EmployeeID string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_form_employee" json:"employee_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Form     EvaluationForm `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Employee Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
