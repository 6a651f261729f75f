// Package scalarchi mounts a Scalar API reference on a go-chi router.
package scalarchi

import (
	"github.com/go-chi/chi/v5"

	"github.com/reflow/scalar"
)

// Register adds the GET routes of s to r.
func Register(r chi.Router, s scalar.Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		r.Method("GET", path, scalar.ServeBody(contentType, body))
	})
}

// Router returns a router holding only the routes of s. Route paths are
// absolute, so mount it at the root:
//
//	r.Mount("/", docs)
func Router(s scalar.Scalar) (chi.Router, error) {
	r := chi.NewRouter()
	if err := Register(r, s); err != nil {
		return nil, err
	}
	return r, nil
}
