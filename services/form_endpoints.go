package services

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prodvi/backend/models"
	"github.com/prodvi/backend/repository"
)

// FormEndpoints is the thin collaborator surface the pipeline needs:
// creating employees and forms, assigning participants, and reading a form
// back with its questions. Full form management lives in the admin UI, not
// here.
type FormEndpoints struct {
	repo *repository.GORMRepository
}

func NewFormEndpoints(repo *repository.GORMRepository) *FormEndpoints {
	return &FormEndpoints{repo: repo}
}

func (e *FormEndpoints) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", e.ListEmployeesHandler)
		r.Post("/", e.CreateEmployeeHandler)
	})
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", e.ListFormsHandler)
		r.Post("/", e.CreateFormHandler)
		r.Get("/{id}", e.GetFormHandler)
		r.Post("/{id}/assignments", e.AssignEmployeeHandler)
	})
}

type CreateEmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (e *FormEndpoints) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	employee := &models.Employee{Name: req.Name, Email: req.Email}
	if err := e.repo.CreateEmployee(r.Context(), employee); err != nil {
		http.Error(w, "Failed to create employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (e *FormEndpoints) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := e.repo.ListEmployees(r.Context())
	if err != nil {
		http.Error(w, "Failed to list employees", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"employees": employees,
		"count":     len(employees),
	})
}

type CreateFormRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
}

func (e *FormEndpoints) CreateFormHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || len(req.Questions) == 0 {
		http.Error(w, "Title and at least one question are required", http.StatusBadRequest)
		return
	}

	form := &models.EvaluationForm{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	for i, text := range req.Questions {
		form.Questions = append(form.Questions, models.FormQuestion{
			Position: i + 1,
			Text:     text,
		})
	}

	if err := e.repo.CreateForm(r.Context(), form); err != nil {
		http.Error(w, "Failed to create form", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, form)
}

func (e *FormEndpoints) ListFormsHandler(w http.ResponseWriter, r *http.Request) {
	forms, err := e.repo.ListForms(r.Context())
	if err != nil {
		http.Error(w, "Failed to list forms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"forms": forms,
		"count": len(forms),
	})
}

func (e *FormEndpoints) GetFormHandler(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "id")
	if formID == "" {
		http.Error(w, "Form ID is required", http.StatusBadRequest)
		return
	}

	form, err := e.repo.GetFormWithQuestions(r.Context(), formID)
	if err != nil {
		http.Error(w, "Failed to get form", http.StatusInternalServerError)
		return
	}
	if form == nil {
		http.Error(w, "Form not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

type AssignEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (e *FormEndpoints) AssignEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "id")
	if formID == "" {
		http.Error(w, "Form ID is required", http.StatusBadRequest)
		return
	}

	var req AssignEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EmployeeID == "" {
		http.Error(w, "employee_id is required", http.StatusBadRequest)
		return
	}

	assignment := &models.FormAssignment{
		FormID:     formID,
		EmployeeID: req.EmployeeID,
	}
	if err := e.repo.AssignEmployee(r.Context(), assignment); err != nil {
		http.Error(w, "Failed to assign employee", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, assignment)
}
