package droplet

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avast/retry-go"
	"github.com/spf13/viper"
	"github.com/vessel-io/agent/pkg/env"
	"github.com/vessel-io/agent/pkg/prom"
	"go.uber.org/zap"
)

var reg *Registry

// Handle is one deployable droplet in the registry, keyed by content sha1
type Handle interface {
	SHA1() string
	Path() string
	// Exists reports whether the droplet is already present locally
	Exists() bool
	// Download fetches the droplet from the uri asynchronously,
	// the callback is called exactly once with the outcome
	Download(uri string, callback func(error))
}

// Registry resolves droplet handles against the node's droplet directory
type Registry struct {
	dir string
}

// Initial creates the process-wide Registry,
// a mock handle implementation is switched in for tests and local runs
func Initial() {
	reg = NewRegistry(viper.GetString(env.DropletDirectory))
	if viper.GetBool(env.Mock) {
		NewHandle = func(dir string, sha1 string) Handle {
			return NewMockHandle(sha1)
		}
	}
}

// GetRegistry returns the process-wide Registry
func GetRegistry() *Registry {
	return reg
}

// NewRegistry initializes a Registry rooted at the given directory
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Resolve returns the handle for a sha1, it never fails and has no side effects
func (r *Registry) Resolve(sha1 string) Handle {
	return NewHandle(r.dir, sha1)
}

// add test inject point here
var NewHandle = func(dir string, sha1 string) Handle {
	return &localHandle{dir: dir, sha1: sha1}
}

// localHandle stores droplets as files named by sha1 in the droplet directory
type localHandle struct {
	dir  string
	sha1 string
}

func (h *localHandle) SHA1() string {
	return h.sha1
}

func (h *localHandle) Path() string {
	return filepath.Join(h.dir, h.sha1)
}

func (h *localHandle) Exists() bool {
	info, err := os.Stat(h.Path())
	return err == nil && !info.IsDir()
}

// Download fetches the droplet over http on its own execution unit.
// The fetch itself retries transient failures a configured number of times,
// the lifecycle core above sees a single success or a single failure.
func (h *localHandle) Download(uri string, callback func(error)) {
	go func() {
		attempts := viper.GetUint(env.DownloadAttempts)
		if attempts == 0 {
			attempts = 1
		}
		err := retry.Do(
			func() error {
				return h.fetch(uri)
			},
			retry.Attempts(attempts),
		)
		if err != nil {
			zap.S().Warnw("droplet download error", "sha1", h.sha1, "uri", uri, "err", err)
			prom.DropletDownloads.WithLabelValues("error").Inc()
		} else {
			prom.DropletDownloads.WithLabelValues("ok").Inc()
		}
		callback(err)
	}()
}

// fetch writes the body to a temp file, checks the content sha1
// and moves it into place
func (h *localHandle) fetch(uri string) error {
	resp, err := http.Get(uri)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("droplet fetch status %d from %s", resp.StatusCode, uri)
	}
	if err := os.MkdirAll(h.dir, 0775); err != nil {
		return err
	}
	tmp, err := os.Create(h.Path() + ".part")
	if err != nil {
		return err
	}
	sum := sha1.New()
	_, err = io.Copy(io.MultiWriter(tmp, sum), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if got := hex.EncodeToString(sum.Sum(nil)); got != h.sha1 {
		os.Remove(tmp.Name())
		return fmt.Errorf("droplet sha1 mismatch, expected %s got %s", h.sha1, got)
	}
	return os.Rename(tmp.Name(), h.Path())
}
