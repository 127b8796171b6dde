package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// taskIDParam is the chi URL parameter holding a task id.
const taskIDParam = "id"

// identityFromRequest returns the caller placed in the context by the auth
// middleware. Its absence means the route was mounted without the middleware.
func identityFromRequest(r *http.Request) (domain.Identity, error) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok || identity.ID == uuid.Nil {
		return domain.Identity{}, domain.NewAuthError(service.MsgAccessTokenRequired, nil)
	}
	return identity, nil
}

// taskIDFromPath parses the task id path parameter. An id that is not a
// UUID cannot name any task, so it is reported as not found.
func taskIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, taskIDParam))
	if err != nil {
		return uuid.Nil, domain.NewNotFoundError(service.MsgTaskNotFound)
	}
	return id, nil
}

// positiveQueryInt reads an optional positive integer query parameter.
// An absent parameter yields 0 so the service applies its default.
func positiveQueryInt(r *http.Request, name, message string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError(message)
	}
	return n, nil
}

// listParamsFromQuery builds ListTasksParams from page, limit, status and
// search query parameters.
func listParamsFromQuery(r *http.Request) (service.ListTasksParams, error) {
	page, err := positiveQueryInt(r, "page", service.MsgInvalidPage)
	if err != nil {
		return service.ListTasksParams{}, err
	}
	limit, err := positiveQueryInt(r, "limit", service.MsgInvalidLimit)
	if err != nil {
		return service.ListTasksParams{}, err
	}

	q := r.URL.Query()
	return service.ListTasksParams{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
		Search: q.Get("search"),
	}, nil
}

// validationMessager is implemented by request DTOs that carry validate tags.
// The message is what the client sees when the tags reject the payload.
type validationMessager interface {
	validationMessage() string
}

// decodeBody decodes a JSON body into v and checks its validate tags. A
// missing body is validated as an empty payload, so it is reported as
// missing fields rather than as malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := shared.DecodeJSON(w, r, v)
	if err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		return invalidBody(err)
	}

	if err := shared.ValidateRequest(v); err != nil {
		message := MsgInvalidBody
		if m, ok := v.(validationMessager); ok {
			message = m.validationMessage()
		}
		return &domain.Error{Kind: domain.ErrValidation, Message: message, Err: err}
	}
	return nil
}

// invalidBody classifies a body that could not be decoded as a client error.
func invalidBody(err error) error {
	return &domain.Error{Kind: domain.ErrValidation, Message: MsgInvalidBody, Err: err}
}
