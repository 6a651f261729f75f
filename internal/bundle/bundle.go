// Package bundle downloads the @scalar/api-reference browser bundle that
// the scalar package embeds.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	Package = "@scalar/api-reference"

	// FileName is the bundle file the scalar package embeds.
	FileName = "scalar-api-reference.js"
	// VersionFileName records the version of the bundle next to it.
	VersionFileName = "scalar-api-reference.version"

	DefaultRegistry = "https://registry.npmjs.org"
	DefaultCDN      = "https://cdn.jsdelivr.net"

	standalonePath = "dist/browser/standalone.js"
)

var (
	// ErrEmptyBundle is returned when the CDN answers with an empty body.
	ErrEmptyBundle = errors.New("bundle: downloaded bundle is empty")
	// ErrNoVersion is returned when the registry metadata has no version.
	ErrNoVersion = errors.New("bundle: registry returned no version")
	// ErrRemoteBundle is returned for a loader that imports the viewer from
	// a remote URL instead of containing it.
	ErrRemoteBundle = errors.New("bundle: artifact loads the viewer from a remote url")
)

// remoteImport matches static, dynamic and re-export imports of an
// absolute or protocol relative URL.
var remoteImport = regexp.MustCompile(`(?:\bimport\s*\(?\s*|\bfrom\s*)["'\x60](?:https?:)?//`)

// Validate rejects artifacts that cannot be embedded: empty files and
// loaders that pull the viewer from the network at page load.
func Validate(js []byte) error {
	if len(strings.TrimSpace(string(js))) == 0 {
		return ErrEmptyBundle
	}
	if remoteImport.Match(js) {
		return ErrRemoteBundle
	}
	return nil
}

// StatusError reports a non-200 answer from the registry or the CDN.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bundle: GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Config configures a Fetcher. Zero fields take the defaults.
type Config struct {
	Registry string
	CDN      string
	Attempts uint
	Delay    time.Duration
	Client   *http.Client
}

// Fetcher resolves and downloads bundle versions.
type Fetcher struct {
	registry string
	cdn      string
	attempts uint
	delay    time.Duration
	client   *http.Client
}

// NewFetcher creates a fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	f := &Fetcher{
		registry: strings.TrimSuffix(cfg.Registry, "/"),
		cdn:      strings.TrimSuffix(cfg.CDN, "/"),
		attempts: cfg.Attempts,
		delay:    cfg.Delay,
		client:   cfg.Client,
	}
	if f.registry == "" {
		f.registry = DefaultRegistry
	}
	if f.cdn == "" {
		f.cdn = DefaultCDN
	}
	if f.attempts == 0 {
		f.attempts = 3
	}
	if f.delay == 0 {
		f.delay = 500 * time.Millisecond
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	return f
}

// LatestVersion asks the npm registry for the latest published version.
func (f *Fetcher) LatestVersion(ctx context.Context) (string, error) {
	body, err := f.get(ctx, f.registry+"/"+Package+"/latest")
	if err != nil {
		return "", err
	}

	var meta struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return "", fmt.Errorf("decode registry metadata: %w", err)
	}
	if meta.Version == "" {
		return "", ErrNoVersion
	}
	return meta.Version, nil
}

// Download fetches the standalone browser bundle of version and checks it
// with Validate.
func (f *Fetcher) Download(ctx context.Context, version string) ([]byte, error) {
	url := fmt.Sprintf("%s/npm/%s@%s/%s", f.cdn, Package, version, standalonePath)
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := Validate(body); err != nil {
		return nil, err
	}
	return body, nil
}

// Result describes what Sync did.
type Result struct {
	Version string
	Path    string
	Updated bool
}

// Sync makes dir hold the bundle of version, resolving "latest" or an
// empty version through the registry. The download is skipped when the
// recorded version already matches and force is false.
func (f *Fetcher) Sync(ctx context.Context, dir, version string, force bool) (Result, error) {
	if version == "" || version == "latest" {
		v, err := f.LatestVersion(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("resolve latest version: %w", err)
		}
		version = v
	}

	res := Result{Version: version, Path: filepath.Join(dir, FileName)}

	if !force {
		current, err := InstalledVersion(dir)
		if err != nil {
			return Result{}, err
		}
		if current == version {
			if _, err := os.Stat(res.Path); err == nil {
				log.Info().Str("version", version).Msg("Scalar bundle is up to date")
				return res, nil
			}
		}
		if current != "" && current != version {
			log.Info().Str("current", current).Str("latest", version).Msg("Scalar has a new version")
		}
	}

	js, err := f.Download(ctx, version)
	if err != nil {
		return Result{}, fmt.Errorf("download %s@%s: %w", Package, version, err)
	}
	if err := writeFileAtomic(res.Path, js); err != nil {
		return Result{}, err
	}
	if err := writeFileAtomic(filepath.Join(dir, VersionFileName), []byte(version+"\n")); err != nil {
		return Result{}, err
	}

	res.Updated = true
	log.Info().
		Str("version", version).
		Str("path", res.Path).
		Int("bytes", len(js)).
		Msg("Scalar bundle updated")
	return res, nil
}

// InstalledVersion reads the recorded bundle version in dir. A missing
// record yields an empty version.
func InstalledVersion(dir string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, VersionFileName))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read bundle version: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := f.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
				if resp.StatusCode < http.StatusInternalServerError {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("url", url).Msg("Retrying bundle request")
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
