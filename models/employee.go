package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is a person who participates in peer reviews. Account management
// (signup, login, passwords) lives in an external user store; this table only
// carries what the review pipeline needs.
type Employee struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Assignments     []FormAssignment  `gorm:"foreignKey:EmployeeID" json:"assignments,omitempty"`
	ReviewsGiven    []PeerReview      `gorm:"foreignKey:ReviewerID" json:"reviews_given,omitempty"`
	ReviewsReceived []PeerReview      `gorm:"foreignKey:RevieweeID" json:"reviews_received,omitempty"`
	Summaries       []EmployeeSummary `gorm:"foreignKey:EmployeeID" json:"summaries,omitempty"`
}
