// Package scalar serves the Scalar API reference viewer for an OpenAPI
// document from any Go HTTP router.
//
// A Scalar descriptor holds the mount path, the page title, the OpenAPI
// payload and the viewer configuration. It derives three routes:
//
//	GET {url}                         → HTML bootstrap page
//	GET {url}/scalar-api-reference.js → embedded viewer bundle
//	GET {url}/api-docs/openapi.json   → the OpenAPI document as JSON
//
// Router specific adapters live under adapters/. The standard library is
// covered by NewHandler and Register in this package.
package scalar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// OpenAPIJSONName is the path, relative to the mount URL, of the
	// OpenAPI JSON endpoint.
	OpenAPIJSONName = "api-docs/openapi.json"

	// HTMLContentType is the content type of the bootstrap page.
	HTMLContentType = "text/html; charset=utf-8"
	// JSONContentType is the content type of the OpenAPI document.
	JSONContentType = "application/json"

	defaultURL   = "/"
	defaultTitle = "Scalar"
)

// ErrInvalidURL is returned when the mount path does not start with a
// slash or holds characters that routers read as pattern syntax.
var ErrInvalidURL = errors.New("scalar: invalid mount url")

// patternChars are wildcard and parameter markers of the supported routers
// ({name} for ServeMux, chi and mux; :name and * for gin, echo and fiber).
// Whitespace separates method and path in ServeMux patterns.
const patternChars = "{}*: \t\r\n"

// Scalar describes one mounted API reference. The zero value is not
// usable; construct it with New.
type Scalar struct {
	url     string
	title   string
	openapi any
	config  Config
}

// New returns a descriptor for the given OpenAPI payload, mounted at "/"
// with the title "Scalar" and DefaultConfig.
//
// The payload may be any value with a JSON encoding: a typed OpenAPI model
// (for example huma's *OpenAPI), a map, a json.RawMessage or the result of
// FromYAML.
func New(openapi any) Scalar {
	return Scalar{
		url:     defaultURL,
		title:   defaultTitle,
		openapi: openapi,
		config:  DefaultConfig(),
	}
}

// WithURL sets the mount path.
func (s Scalar) WithURL(url string) Scalar {
	s.url = url
	return s
}

// WithTitle sets the HTML document title.
func (s Scalar) WithTitle(title string) Scalar {
	s.title = title
	return s
}

// WithConfig replaces the viewer configuration.
func (s Scalar) WithConfig(config Config) Scalar {
	s.config = config
	return s
}

// URL is the mount path, which is also the path of the bootstrap page.
func (s Scalar) URL() string { return s.url }

func (s Scalar) Title() string { return s.title }

func (s Scalar) Config() Config { return s.config }

func (s Scalar) OpenAPI() any { return s.openapi }

// ScriptURL is the URL of the viewer bundle.
func (s Scalar) ScriptURL() string { return s.url + "/" + ScriptName }

// APIJSONURL is the URL of the OpenAPI JSON endpoint.
func (s Scalar) APIJSONURL() string { return s.url + "/" + OpenAPIJSONName }

// APIJSON serializes the OpenAPI payload. HTML characters are left
// unescaped so the output matches what a JavaScript client would produce
// with JSON.stringify.
func (s Scalar) APIJSON() ([]byte, error) {
	b, err := json.MarshalWithOption(s.openapi, json.DisableHTMLEscape())
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return b, nil
}

// ConfigJSON serializes the viewer configuration.
func (s Scalar) ConfigJSON() ([]byte, error) {
	b, err := json.MarshalWithOption(s.config, json.DisableHTMLEscape())
	if err != nil {
		return nil, fmt.Errorf("marshal scalar config: %w", err)
	}
	return b, nil
}

// Endpoint is a precomputed response for a single GET route.
type Endpoint struct {
	Path        string
	ContentType string
	Body        []byte
}

// Endpoints computes the page, script and OpenAPI endpoints, in that order.
// The mount URL must be a literal path: it must begin with "/" and may not
// contain "{", "}", "*", ":" or whitespace.
// Every body is rendered here so that a serialization problem surfaces at
// registration time instead of on the first request.
func (s Scalar) Endpoints() ([]Endpoint, error) {
	if !strings.HasPrefix(s.url, "/") {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrInvalidURL, s.url)
	}
	if strings.ContainsAny(s.url, patternChars) {
		return nil, fmt.Errorf("%w: %q contains route pattern characters", ErrInvalidURL, s.url)
	}

	page, err := s.Markup()
	if err != nil {
		return nil, err
	}
	spec, err := s.APIJSON()
	if err != nil {
		return nil, err
	}

	return []Endpoint{
		{Path: s.url, ContentType: HTMLContentType, Body: page},
		{Path: s.ScriptURL(), ContentType: ScriptContentType, Body: apiReferenceJS},
		{Path: s.APIJSONURL(), ContentType: JSONContentType, Body: spec},
	}, nil
}

// RouteFunc registers a GET route on a host router that always answers 200
// with the given content type and body.
type RouteFunc func(path, contentType string, body []byte)

// Mount computes the endpoints once and hands each one to get. Paths that
// contain "//" (as happens when the descriptor is mounted at "/") are also
// registered with the slashes collapsed, so proxies that clean the request
// path still reach the same body.
func (s Scalar) Mount(get RouteFunc) error {
	endpoints, err := s.Endpoints()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, 2*len(endpoints))
	for _, e := range endpoints {
		for _, p := range []string{e.Path, collapseSlashes(e.Path)} {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			get(p, e.ContentType, e.Body)
			log.Debug().
				Str("path", p).
				Str("content_type", e.ContentType).
				Int("bytes", len(e.Body)).
				Msg("Scalar route registered")
		}
	}
	return nil
}

func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
