package api

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Response messages of the auth endpoints.
const (
	MsgRegistered = "User created successfully"
	MsgLoggedIn   = "Login successful"
	MsgLoggedOut  = "Logged out successfully"
)

// CredentialsRequest is the payload of the register and login endpoints.
// Email format and password length are checked by the auth service.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (CredentialsRequest) validationMessage() string { return service.MsgCredentialsRequired }

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (RefreshTokenRequest) validationMessage() string { return service.MsgRefreshTokenRequired }

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the successful response for authentication endpoints.
// Refresh omits the message.
type AuthResponse struct {
	Message      string       `json:"message,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func newAuthResponse(message string, result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Message:      message,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: UserResponse{
			ID:    result.User.ID,
			Email: result.User.Email,
		},
	}
}

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

func (CreateTaskRequest) validationMessage() string { return domain.MsgTitleRequired }

// UpdateTaskRequest defines the payload for PATCH /tasks/{id}. An absent
// field is left unchanged; an explicit null description clears it.
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description json.RawMessage `json:"description"`
	Completed   *bool           `json:"completed"`
}

// Patch converts the request into a domain.TaskPatch.
func (r UpdateTaskRequest) Patch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:     r.Title,
		Completed: r.Completed,
	}

	switch {
	case r.Description == nil:
	case bytes.Equal(bytes.TrimSpace(r.Description), []byte("null")):
		patch.ClearDescription = true
	default:
		var desc string
		if err := json.Unmarshal(r.Description, &desc); err != nil {
			return domain.TaskPatch{}, domain.NewValidationError("Description must be a string")
		}
		patch.Description = &desc
	}

	return patch, nil
}

// PaginationResponse carries the totals of a task listing.
type PaginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// TaskListResponse is the body of GET /tasks.
type TaskListResponse struct {
	Tasks      []domain.Task      `json:"tasks"`
	Pagination PaginationResponse `json:"pagination"`
}

func newTaskListResponse(page *service.TaskPage) TaskListResponse {
	return TaskListResponse{
		Tasks: page.Tasks,
		Pagination: PaginationResponse{
			Total: page.Total,
			Page:  page.Page,
			Pages: page.Pages,
			Limit: page.Limit,
		},
	}
}
