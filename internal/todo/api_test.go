package todo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, todos ...Todo) (http.Handler, huma.API) {
	t.Helper()

	store := NewStore()
	for _, todo := range todos {
		require.NoError(t, store.Create(t.Context(), todo))
	}

	r := chi.NewRouter()
	api := humachi.New(r, Config("TodoOpenApi", "1.0.0"))
	Register(api, store)
	return r, api
}

func do(t *testing.T, h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func withKey(key string) http.Header {
	h := http.Header{}
	h.Set(APIKeyHeader, key)
	return h
}

func decodeTodos(t *testing.T, rec *httptest.ResponseRecorder) []Todo {
	t.Helper()
	var todos []Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	return todos
}

func TestListTodos(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/api/v1/todos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	h, _ = newTestAPI(t, Todo{ID: 1, Value: "Buy groceries"})
	rec = do(t, h, http.MethodGet, "/api/v1/todos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []Todo{{ID: 1, Value: "Buy groceries"}}, decodeTodos(t, rec))
}

func TestCreateTodo(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/v1/todos", `{"id":1,"value":"Buy groceries","done":false}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, Todo{ID: 1, Value: "Buy groceries"}, created)

	rec = do(t, h, http.MethodPost, "/api/v1/todos", `{"id":1,"value":"Again","done":false}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/todos", "", nil)
	assert.Equal(t, []Todo{{ID: 1, Value: "Buy groceries"}}, decodeTodos(t, rec))
}

func TestCreateTodoValidation(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/v1/todos", `{"value":"no id"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchTodos(t *testing.T) {
	h, _ := newTestAPI(t,
		Todo{ID: 1, Value: "Buy Groceries"},
		Todo{ID: 2, Value: "buy groceries", Done: true},
		Todo{ID: 3, Value: "Walk"},
	)

	rec := do(t, h, http.MethodGet, "/api/v1/todos/search?value=BUY+GROCERIES&done=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []Todo{{ID: 1, Value: "Buy Groceries"}}, decodeTodos(t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/todos/search?value=walk&done=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/todos/search?done=true", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMarkDone(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		header http.Header
		want   int
	}{
		{name: "without key", id: "1", want: http.StatusOK},
		{name: "with key", id: "1", header: withKey(APIKey), want: http.StatusOK},
		{name: "wrong key", id: "1", header: withKey("nope"), want: http.StatusUnauthorized},
		{name: "missing item", id: "9", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAPI(t, Todo{ID: 1, Value: "a"})

			rec := do(t, h, http.MethodPut, "/api/v1/todos/"+tt.id, "", tt.header)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())

			list := decodeTodos(t, do(t, h, http.MethodGet, "/api/v1/todos", "", nil))
			assert.Equal(t, tt.want == http.StatusOK, list[0].Done)
		})
	}
}

func TestDeleteTodo(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		header http.Header
		want   int
		left   int
	}{
		{name: "with key", id: "1", header: withKey(APIKey), want: http.StatusOK, left: 0},
		{name: "without key", id: "1", want: http.StatusUnauthorized, left: 1},
		{name: "wrong key", id: "1", header: withKey("nope"), want: http.StatusUnauthorized, left: 1},
		{name: "missing item", id: "9", header: withKey(APIKey), want: http.StatusNotFound, left: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAPI(t, Todo{ID: 1, Value: "a"})

			rec := do(t, h, http.MethodDelete, "/api/v1/todos/"+tt.id, "", tt.header)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())

			list := decodeTodos(t, do(t, h, http.MethodGet, "/api/v1/todos", "", nil))
			assert.Len(t, list, tt.left)
		})
	}
}

func TestOpenAPIDocument(t *testing.T) {
	_, api := newTestAPI(t)
	doc := api.OpenAPI()

	assert.Equal(t, "TodoOpenApi", doc.Info.Title)
	require.Contains(t, doc.Components.SecuritySchemes, "api_key")
	assert.Equal(t, "header", doc.Components.SecuritySchemes["api_key"].In)
	assert.Equal(t, APIKeyHeader, doc.Components.SecuritySchemes["api_key"].Name)

	require.Contains(t, doc.Paths, "/api/v1/todos")
	require.Contains(t, doc.Paths, "/api/v1/todos/{id}")
	item := doc.Paths["/api/v1/todos/{id}"]
	require.NotNil(t, item.Delete)
	assert.Equal(t, []string{"todo"}, item.Delete.Tags)
	assert.Equal(t, []map[string][]string{{"api_key": {}}}, item.Delete.Security)

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"operationId":"mark-done"`)
}

func TestHumaServesNoDocs(t *testing.T) {
	h, _ := newTestAPI(t)

	for _, path := range []string{"/docs", "/openapi.json", "/schemas/Todo.json"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
