// Package todo is the example API documented by the Scalar reference of the
// todo server: an in-memory to-do list behind huma operations.
package todo

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/reflow/scalar/internal/telemetry"
)

const (
	// APIKeyHeader carries the key checked by the mutating operations.
	APIKeyHeader = "todo_apikey"
	// APIKey is the only accepted key.
	APIKey = "utoipa-rocks"

	securityScheme = "api_key"
	tag            = "todo"
	basePath       = "/api/v1/todos"
)

// Config returns the huma configuration for the todo API. huma serves
// neither documentation nor schemas; the Scalar reference does that.
func Config(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	cfg.CreateHooks = nil

	cfg.Info.Description = "Simple in-memory to-do list API."
	cfg.Tags = []*huma.Tag{{Name: tag, Description: "Todo items management API"}}
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		securityScheme: {Type: "apiKey", In: "header", Name: APIKeyHeader},
	}
	return cfg
}

type handler struct {
	store *Store
}

// Register adds the todo operations to api.
func Register(api huma.API, store *Store) {
	h := &handler{store: store}

	huma.Register(api, ListTodosDocs(), h.listTodos)
	huma.Register(api, SearchTodosDocs(), h.searchTodos)
	huma.Register(api, CreateTodoDocs(), h.createTodo)
	huma.Register(api, MarkDoneDocs(), h.markDone)
	huma.Register(api, DeleteTodoDocs(), h.deleteTodo)
}

type TodosResponse struct {
	Body []Todo
}

func ListTodosDocs() huma.Operation {
	return huma.Operation{
		OperationID: "list-todos",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List all todos",
		Description: "List all Todo items from in-memory storage.",
		Tags:        []string{tag},
	}
}

func (h *handler) listTodos(ctx context.Context, _ *struct{}) (*TodosResponse, error) {
	telemetry.RecordOperation(ctx, "list", "ok")
	return &TodosResponse{Body: h.store.List()}, nil
}

type SearchTodosInput struct {
	Value string `query:"value" required:"true" doc:"Content that should be found from Todo's value field"`
	Done  bool   `query:"done" required:"true" doc:"Search by done status"`
}

func SearchTodosDocs() huma.Operation {
	return huma.Operation{
		OperationID: "search-todos",
		Method:      http.MethodGet,
		Path:        basePath + "/search",
		Summary:     "Search todos",
		Description: "Search Todo items by value, ignoring case, and done status.",
		Tags:        []string{tag},
	}
}

func (h *handler) searchTodos(ctx context.Context, input *SearchTodosInput) (*TodosResponse, error) {
	telemetry.RecordOperation(ctx, "search", "ok")
	return &TodosResponse{Body: h.store.Search(input.Value, input.Done)}, nil
}

type CreateTodoInput struct {
	Body Todo
}

type TodoResponse struct {
	Body Todo
}

func CreateTodoDocs() huma.Operation {
	return huma.Operation{
		OperationID:   "create-todo",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Create a todo",
		Description:   "Create a new Todo item. Fails with a conflict when the id already exists.",
		Tags:          []string{tag},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict},
	}
}

func (h *handler) createTodo(ctx context.Context, input *CreateTodoInput) (*TodoResponse, error) {
	if err := h.store.Create(ctx, input.Body); err != nil {
		if errors.Is(err, ErrConflict) {
			telemetry.RecordOperation(ctx, "create", "conflict")
			return nil, huma.Error409Conflict("todo with this id already exists")
		}
		telemetry.RecordOperation(ctx, "create", "error")
		return nil, huma.Error500InternalServerError("failed to create todo", err)
	}

	log.Debug().Int("id", input.Body.ID).Msg("Todo created")
	telemetry.RecordOperation(ctx, "create", "ok")
	return &TodoResponse{Body: input.Body}, nil
}

type MarkDoneInput struct {
	ID     int    `path:"id" doc:"Unique database id"`
	APIKey string `header:"todo_apikey" doc:"API key, optional for this operation"`
}

func MarkDoneDocs() huma.Operation {
	return huma.Operation{
		OperationID:   "mark-done",
		Method:        http.MethodPut,
		Path:          basePath + "/{id}",
		Summary:       "Mark a todo done",
		Description:   "Mark Todo item done by id. The API key is optional but must be valid when sent.",
		Tags:          []string{tag},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
		Security:      []map[string][]string{{}, {securityScheme: {}}},
	}
}

func (h *handler) markDone(ctx context.Context, input *MarkDoneInput) (*struct{}, error) {
	if input.APIKey != "" && input.APIKey != APIKey {
		telemetry.RecordOperation(ctx, "mark_done", "unauthorized")
		return nil, huma.Error401Unauthorized("incorrect api key")
	}
	if err := h.store.MarkDone(input.ID); err != nil {
		telemetry.RecordOperation(ctx, "mark_done", "not_found")
		return nil, huma.Error404NotFound("todo not found")
	}

	telemetry.RecordOperation(ctx, "mark_done", "ok")
	return &struct{}{}, nil
}

type DeleteTodoInput struct {
	ID     int    `path:"id" doc:"Unique database id"`
	APIKey string `header:"todo_apikey" doc:"API key"`
}

func DeleteTodoDocs() huma.Operation {
	return huma.Operation{
		OperationID:   "delete-todo",
		Method:        http.MethodDelete,
		Path:          basePath + "/{id}",
		Summary:       "Delete a todo",
		Description:   "Delete Todo item by id. Requires a valid API key.",
		Tags:          []string{tag},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
		Security:      []map[string][]string{{securityScheme: {}}},
	}
}

func (h *handler) deleteTodo(ctx context.Context, input *DeleteTodoInput) (*struct{}, error) {
	if input.APIKey != APIKey {
		telemetry.RecordOperation(ctx, "delete", "unauthorized")
		return nil, huma.Error401Unauthorized("missing or incorrect api key")
	}
	if err := h.store.Delete(ctx, input.ID); err != nil {
		telemetry.RecordOperation(ctx, "delete", "not_found")
		return nil, huma.Error404NotFound("todo not found")
	}

	log.Debug().Int("id", input.ID).Msg("Todo deleted")
	telemetry.RecordOperation(ctx, "delete", "ok")
	return &struct{}{}, nil
}
