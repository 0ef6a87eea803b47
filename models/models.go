package models

// This file serves as the central export point for all database models
// Import this package to access all model types

// All models are automatically exported from their respective files:
// - Employee from employee.go
// - EvaluationForm, FormQuestion, FormAssignment from form.go
// - PeerReview, ResponseEntry, AnswerAnalysis from review.go
// - EmployeeSummary, FeedbackDocument, QuestionFeedback from summary.go

// Database schema overview:
// 1. employees - People who give and receive peer reviews
// 2. evaluation_forms - Admin-created forms with an ordered question list
// 3. form_questions - The questions belonging to a form, ordered by position
// 4. form_assignments - Which employees participate in a given form
// 5. peer_reviews - One review per (form, reviewer, reviewee) triple, with
//    the raw responses and the per-question ML analysis stored as JSON
// 6. employee_summaries - At most one per (employee, form); holds the path to
//    the assembled feedback document and the generated narrative
