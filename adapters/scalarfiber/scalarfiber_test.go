package scalarfiber_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflow/scalar"
	"github.com/reflow/scalar/adapters/scalarfiber"
	"github.com/reflow/scalar/internal/scalartest"
)

func doer(app *fiber.App) scalartest.Doer {
	return func(r *http.Request) (*http.Response, error) {
		return app.Test(r, -1)
	}
}

func TestRegister(t *testing.T) {
	s := scalar.New(map[string]string{"openapi": "3.1.0"}).WithURL("/scalar").WithTitle("TodoOpenApi")

	app := fiber.New()
	require.NoError(t, scalarfiber.Register(app, s))

	scalartest.VerifyMount(t, doer(app), s)
}

func TestRegisterGroup(t *testing.T) {
	s := scalar.New(map[string]string{"openapi": "3.1.0"}).WithURL("/docs")

	app := fiber.New()
	require.NoError(t, scalarfiber.Register(app.Group("/v1"), s))
	do := doer(app)

	assert.Equal(t, http.StatusOK, scalartest.Get(t, do, "/v1/docs").Status)
	doc := scalartest.Get(t, do, "/v1/docs/api-docs/openapi.json")
	assert.Equal(t, http.StatusOK, doc.Status)
	assert.Equal(t, `{"openapi":"3.1.0"}`, string(doc.Body))
}

func TestRegisterIndependentMounts(t *testing.T) {
	a := scalar.New(map[string]string{"api": "a"}).WithURL("/a")
	b := scalar.New(map[string]string{"api": "b"}).WithURL("/b")

	app := fiber.New()
	require.NoError(t, scalarfiber.Register(app, a))
	require.NoError(t, scalarfiber.Register(app, b))
	do := doer(app)

	scalartest.VerifyMount(t, do, a)
	scalartest.VerifyMount(t, do, b)
}

func TestRegisterInvalid(t *testing.T) {
	err := scalarfiber.Register(fiber.New(), scalar.New(nil).WithURL("docs"))
	require.ErrorIs(t, err, scalar.ErrInvalidURL)
}
