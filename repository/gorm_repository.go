package repository

import (
	"context"
	"log/slog"

	"github.com/prodvi/backend/models"
	"gorm.io/gorm"
)

type GORMRepository struct {
	db *gorm.DB
}

func NewGORMRepository(db *gorm.DB) *GORMRepository {
	return &GORMRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GORMRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.Employee{},
		&models.EvaluationForm{},
		&models.FormQuestion{},
		&models.FormAssignment{},
		&models.PeerReview{},
		&models.EmployeeSummary{},
	)
}

// Employee operations
func (r *GORMRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		slog.Error("Failed to create employee", "error", err)
		return err
	}
	slog.Info("Employee created", "employee_id", employee.ID, "email", employee.Email)
	return nil
}

func (r *GORMRepository) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get employee by ID", "error", err, "employee_id", id)
		return nil, err
	}
	return &employee, nil
}

func (r *GORMRepository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get employee by email", "error", err, "email", email)
		return nil, err
	}
	return &employee, nil
}

func (r *GORMRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Order("name").Find(&employees).Error; err != nil {
		slog.Error("Failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// Form operations
func (r *GORMRepository) CreateForm(ctx context.Context, form *models.EvaluationForm) error {
	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		slog.Error("Failed to create evaluation form", "error", err)
		return err
	}
	slog.Info("Evaluation form created", "form_id", form.ID, "title", form.Title)
	return nil
}

// GetFormWithQuestions gets a form with its questions in position order
func (r *GORMRepository) GetFormWithQuestions(ctx context.Context, formID string) (*models.EvaluationForm, error) {
	var form models.EvaluationForm
	err := r.db.WithContext(ctx).
		Where("id = ?", formID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("form_questions.position")
		}).
		First(&form).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get form with questions", "error", err, "form_id", formID)
		return nil, err
	}
	return &form, nil
}

func (r *GORMRepository) ListForms(ctx context.Context) ([]models.EvaluationForm, error) {
	var forms []models.EvaluationForm
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at").Find(&forms).Error
	if err != nil {
		slog.Error("Failed to list evaluation forms", "error", err)
		return nil, err
	}
	return forms, nil
}

// Assignment operations
func (r *GORMRepository) AssignEmployee(ctx context.Context, assignment *models.FormAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		slog.Error("Failed to assign employee to form", "error", err, "form_id", assignment.FormID, "employee_id", assignment.EmployeeID)
		return err
	}
	slog.Info("Employee assigned to form", "form_id", assignment.FormID, "employee_id", assignment.EmployeeID)
	return nil
}

func (r *GORMRepository) GetAssignedEmployees(ctx context.Context, formID string) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Joins("JOIN form_assignments ON form_assignments.employee_id = employees.id").
		Where("form_assignments.form_id = ? AND form_assignments.deleted_at IS NULL", formID).
		Order("employees.name").
		Find(&employees).Error
	if err != nil {
		slog.Error("Failed to get assigned employees", "error", err, "form_id", formID)
		return nil, err
	}
	return employees, nil
}

func (r *GORMRepository) CountAssignments(ctx context.Context, formID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FormAssignment{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	if err != nil {
		slog.Error("Failed to count assignments", "error", err, "form_id", formID)
		return 0, err
	}
	return count, nil
}

func (r *GORMRepository) IsAssigned(ctx context.Context, formID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FormAssignment{}).
		Where("form_id = ? AND employee_id = ?", formID, employeeID).
		Count(&count).Error
	if err != nil {
		slog.Error("Failed to check assignment", "error", err, "form_id", formID, "employee_id", employeeID)
		return false, err
	}
	return count > 0, nil
}
