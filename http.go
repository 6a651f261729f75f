package scalar

import (
	"net/http"
	"strings"
)

// NewHandler returns a standard library handler that answers the routes of
// s by exact path match. Unknown paths get a 404 and other methods than GET
// on a known path get a 405.
//
// The handler can be used directly as a server handler or mounted on a
// ServeMux under the descriptor's URL.
func NewHandler(s Scalar) (http.Handler, error) {
	h := &handler{routes: make(map[string]route, 6)}
	err := s.Mount(func(path, contentType string, body []byte) {
		h.routes[path] = route{contentType: contentType, body: body}
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Register adds the routes of s to mux as "GET" patterns.
//
// ServeMux cleans request paths before matching, so paths containing "//"
// are served through their collapsed alias only.
func Register(mux *http.ServeMux, s Scalar) error {
	return s.Mount(func(path, contentType string, body []byte) {
		if strings.Contains(path, "//") {
			return
		}
		mux.Handle(http.MethodGet+" "+exactPattern(path), ServeBody(contentType, body))
	})
}

// exactPattern keeps ServeMux from treating a trailing slash as a subtree.
func exactPattern(path string) string {
	if strings.HasSuffix(path, "/") {
		return path + "{$}"
	}
	return path
}

type route struct {
	contentType string
	body        []byte
}

type handler struct {
	routes map[string]route
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	write(w, rt.contentType, rt.body)
}

// ServeBody returns a handler that answers every request with 200, the
// given content type and body. Adapters for net/http based routers use it.
func ServeBody(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		write(w, contentType, body)
	}
}

func write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
