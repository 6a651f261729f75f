package scalar

import (
	"bytes"
	"fmt"
	"html"
	"text/template"
)

// The viewer looks up #api-reference and reads data-url and
// data-configuration from it. There is no <html> root element.
var bootstrapTemplate = template.Must(template.New("scalar").
	Funcs(template.FuncMap{"escape": html.EscapeString}).
	Parse(`<!DOCTYPE html>
<head>
  <title>{{escape .Title}}</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
  <script id="api-reference" type="application/json" data-url="{{escape .DataURL}}" data-configuration="{{escape .Configuration}}"></script>
  <script src="{{escape .ScriptURL}}" type="module"></script>
</body>
`))

type bootstrapData struct {
	Title         string
	DataURL       string
	Configuration string
	ScriptURL     string
}

// Markup renders the HTML bootstrap page. Nothing is returned when the
// configuration cannot be serialized.
func (s Scalar) Markup() ([]byte, error) {
	config, err := s.ConfigJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = bootstrapTemplate.Execute(&buf, bootstrapData{
		Title:         s.title,
		DataURL:       s.APIJSONURL(),
		Configuration: string(config),
		ScriptURL:     s.ScriptURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("render scalar page: %w", err)
	}
	return buf.Bytes(), nil
}
