package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
)

// DatabaseSeeder handles database seeding operations
type DatabaseSeeder struct {
	repo *repository.GORMRepository
}

// NewDatabaseSeeder creates a new database seeder
func NewDatabaseSeeder(repo *repository.GORMRepository) *DatabaseSeeder {
	return &DatabaseSeeder{repo: repo}
}

// defaultQuestions are the questions of the seeded quarterly review form.
// Each one targets a trained competency category so the classifier has a
// confident bucket for it.
var defaultQuestions = []string{
	"How easy is it to work together with this person on day-to-day tasks?",
	"How well does this person cooperate with the rest of the team?",
	"How would you describe this person's work ethics?",
	"Is this person punctual for meetings and deadlines?",
	"How efficiently does this person complete their work?",
	"How well does this person communicate their ideas?",
	"How does this person approach problem solving?",
	"How well does this person adapt to changing priorities?",
	"Does this person help others when they are struggling?",
	"What areas should this person focus on to improve?",
}

// SeedDatabase seeds the database with initial data (idempotent)
func (s *DatabaseSeeder) SeedDatabase() error {
	ctx := context.Background()

	if s.isSeedingComplete(ctx) {
		slog.Info("Database seeding already completed, skipping")
		return nil
	}

	employees := []models.Employee{
		{Name: "Alice Novak", Email: "alice@example.com"},
		{Name: "Ben Carter", Email: "ben@example.com"},
		{Name: "Chloe Diaz", Email: "chloe@example.com"},
	}

	for i := range employees {
		if err := s.seedEmployee(ctx, &employees[i]); err != nil {
			slog.Error("Failed to seed employee", "email", employees[i].Email, "error", err)
		}
	}

	form := &models.EvaluationForm{
		Title:       "Quarterly Peer Review",
		Description: "Standard quarterly peer performance review",
		IsActive:    true,
	}
	for i, text := range defaultQuestions {
		form.Questions = append(form.Questions, models.FormQuestion{
			Position: i + 1,
			Text:     text,
		})
	}

	if err := s.repo.CreateForm(ctx, form); err != nil {
		return fmt.Errorf("failed to seed evaluation form: %w", err)
	}

	for _, email := range []string{"alice@example.com", "ben@example.com", "chloe@example.com"} {
		employee, err := s.repo.GetEmployeeByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to look up seeded employee: %w", err)
		}
		if employee == nil {
			return fmt.Errorf("seeded employee %s not found", email)
		}
		if err := s.repo.AssignEmployee(ctx, &models.FormAssignment{
			FormID:     form.ID,
			EmployeeID: employee.ID,
		}); err != nil {
			slog.Error("Failed to seed assignment", "email", email, "error", err)
		}
	}

	slog.Info("Database seeding completed", "employees", len(employees), "questions", len(form.Questions))
	return nil
}

// seedEmployee creates an employee if one with the email does not exist yet.
func (s *DatabaseSeeder) seedEmployee(ctx context.Context, employee *models.Employee) error {
	existing, err := s.repo.GetEmployeeByEmail(ctx, employee.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		*employee = *existing
		return nil
	}
	return s.repo.CreateEmployee(ctx, employee)
}

// isSeedingComplete checks whether a form already exists; seeding runs once.
func (s *DatabaseSeeder) isSeedingComplete(ctx context.Context) bool {
	forms, err := s.repo.ListForms(ctx)
	if err != nil {
		slog.Error("Failed to check seeding state", "error", err)
		return false
	}
	return len(forms) > 0
}
