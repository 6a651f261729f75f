package scalargin_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflow/scalar"
	"github.com/reflow/scalar/adapters/scalargin"
	"github.com/reflow/scalar/internal/scalartest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRegister(t *testing.T) {
	s := scalar.New(map[string]string{"openapi": "3.1.0"}).WithURL("/scalar").WithTitle("TodoOpenApi")

	e := gin.New()
	require.NoError(t, scalargin.Register(e, s))

	scalartest.VerifyMount(t, scalartest.FromHandler(e), s)
}

func TestRegisterGroup(t *testing.T) {
	s := scalar.New(map[string]string{"openapi": "3.1.0"}).WithURL("/docs")

	e := gin.New()
	require.NoError(t, scalargin.Register(e.Group("/v1"), s))
	do := scalartest.FromHandler(e)

	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/v1/docs").Status)
	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/v1/docs/scalar-api-reference.js").Status)
	doc := scalartest.Get(t, do, "/v1/docs/api-docs/openapi.json")
	assert.Equal(t, `{"openapi":"3.1.0"}`, string(doc.Body))
}

func TestRegisterIndependentMounts(t *testing.T) {
	a := scalar.New(map[string]string{"api": "a"}).WithURL("/a")
	b := scalar.New(map[string]string{"api": "b"}).WithURL("/b")

	e := gin.New()
	require.NoError(t, scalargin.Register(e, a))
	require.NoError(t, scalargin.Register(e, b))
	do := scalartest.FromHandler(e)

	scalartest.VerifyMount(t, do, a)
	scalartest.VerifyMount(t, do, b)
}

func TestRegisterRoot(t *testing.T) {
	e := gin.New()
	require.NoError(t, scalargin.Register(e, scalar.New(map[string]any{})))
	do := scalartest.FromHandler(e)

	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/").Status)
	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/scalar-api-reference.js").Status)
	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/api-docs/openapi.json").Status)
}

func TestRegisterInvalid(t *testing.T) {
	err := scalargin.Register(gin.New(), scalar.New(nil).WithURL("docs"))
	require.ErrorIs(t, err, scalar.ErrInvalidURL)
}

func TestRegisterRootWithRemoveExtraSlash(t *testing.T) {
	s := scalar.New(map[string]any{"openapi": "3.1.0"})

	e := gin.New()
	e.RemoveExtraSlash = true
	require.NoError(t, scalargin.Register(e, s))
	do := scalartest.FromHandler(e)

	scalartest.VerifyMount(t, do, s)
	for _, path := range []string{"/scalar-api-reference.js", "/api-docs/openapi.json"} {
		assert.Equal(t, http.StatusOK, scalartest.Get(t, do, path).Status, path)
	}
}

func TestRegisterRootKeepsDoubleSlashUnrouted(t *testing.T) {
	e := gin.New()
	require.NoError(t, scalargin.Register(e, scalar.New(map[string]any{})))

	resp := scalartest.Get(t, scalartest.FromHandler(e), "//scalar-api-reference.js")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}
