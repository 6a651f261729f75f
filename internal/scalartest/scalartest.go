// Package scalartest checks that a host router serves a Scalar descriptor
// the way the viewer expects. Adapter tests share it.
package scalartest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/reflow/scalar"
)

// Doer sends a request to the router under test.
type Doer func(*http.Request) (*http.Response, error)

// FromHandler adapts a standard library handler.
func FromHandler(h http.Handler) Doer {
	return func(r *http.Request) (*http.Response, error) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Result(), nil
	}
}

// Response is a fully read response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Get issues a GET for path and reads the whole body.
func Get(t *testing.T, do Doer, path string) Response {
	t.Helper()
	return Do(t, do, http.MethodGet, path)
}

// Do issues a request with the given method and reads the whole body.
func Do(t *testing.T, do Doer, method, path string) Response {
	t.Helper()
	resp, err := do(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: body}
}

// Page holds what the viewer reads from the bootstrap document.
type Page struct {
	Title         string
	DataURL       string
	Configuration string
	ScriptSrc     string
	ScriptType    string
}

// ParsePage extracts the #api-reference element and the module script.
func ParsePage(t *testing.T, body []byte) Page {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(body))
	require.NoError(t, err)

	var (
		page      Page
		reference bool
		module    bool
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil {
					page.Title = n.FirstChild.Data
				}
			case "script":
				attrs := attrMap(n)
				if attrs["id"] == "api-reference" {
					reference = true
					page.DataURL = attrs["data-url"]
					page.Configuration = attrs["data-configuration"]
				} else if src, ok := attrs["src"]; ok {
					module = true
					page.ScriptSrc = src
					page.ScriptType = attrs["type"]
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	require.True(t, reference, "page has no #api-reference script")
	require.True(t, module, "page has no module script")
	return page
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

// VerifyMount checks the three routes of s against the router: status,
// content type, bodies and the URLs referenced by the page.
func VerifyMount(t *testing.T, do Doer, s scalar.Scalar) {
	t.Helper()

	spec, err := s.APIJSON()
	require.NoError(t, err)
	config, err := s.ConfigJSON()
	require.NoError(t, err)

	page := Get(t, do, s.URL())
	require.Equal(t, http.StatusOK, page.Status)
	require.Equal(t, scalar.HTMLContentType, page.Header.Get("Content-Type"))

	parsed := ParsePage(t, page.Body)
	require.Equal(t, s.Title(), parsed.Title)
	require.Equal(t, s.APIJSONURL(), parsed.DataURL)
	require.Equal(t, s.ScriptURL(), parsed.ScriptSrc)
	require.Equal(t, "module", parsed.ScriptType)
	require.JSONEq(t, string(config), parsed.Configuration)

	script := Get(t, do, s.ScriptURL())
	require.Equal(t, http.StatusOK, script.Status)
	require.Equal(t, scalar.ScriptContentType, script.Header.Get("Content-Type"))
	require.Equal(t, scalar.Script(), script.Body)

	doc := Get(t, do, s.APIJSONURL())
	require.Equal(t, http.StatusOK, doc.Status)
	require.Equal(t, scalar.JSONContentType, doc.Header.Get("Content-Type"))
	require.Equal(t, spec, doc.Body)

	again := Get(t, do, s.URL())
	require.Equal(t, page.Body, again.Body, "page is not stable across requests")
}
