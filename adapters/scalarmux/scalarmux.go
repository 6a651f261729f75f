// Package scalarmux mounts a Scalar API reference on a gorilla/mux router.
package scalarmux

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reflow/scalar"
)

// Register adds the GET routes of s to r. Unless r.SkipClean(true) is set,
// mux redirects paths containing "//" to their cleaned form, which is
// registered as well.
func Register(r *mux.Router, s scalar.Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		r.Handle(path, scalar.ServeBody(contentType, body)).Methods(http.MethodGet)
	})
}
