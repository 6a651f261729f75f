package scalar

import (
	"embed"
	"errors"
	"io/fs"
	"strings"
)

//go:generate go run ./cmd/scalar-assets -dir static

const (
	// ScriptName is the file name of the viewer bundle, relative to the
	// mount URL.
	ScriptName = "scalar-api-reference.js"
	// ScriptContentType is the media type the bundle is served with.
	ScriptContentType = "application/javascript"

	versionName = "scalar-api-reference.version"
)

//go:embed static
var static embed.FS

// apiReferenceJS is shared by every mounted descriptor and must not be
// modified.
var apiReferenceJS = mustRead("static/" + ScriptName)

// bundleVersion is the release recorded by go generate, empty while the
// placeholder is embedded.
var bundleVersion = readVersion()

func mustRead(name string) []byte {
	b, err := static.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return b
}

func readVersion() string {
	b, err := static.ReadFile("static/" + versionName)
	if errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(b))
}

// Script returns a copy of the embedded viewer bundle.
func Script() []byte {
	return append([]byte(nil), apiReferenceJS...)
}

// BundleVersion is the @scalar/api-reference release embedded in the
// binary. It is empty when no release has been generated and the embedded
// script is the offline placeholder.
func BundleVersion() string {
	return bundleVersion
}
