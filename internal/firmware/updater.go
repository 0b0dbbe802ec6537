// internal/firmware/updater.go
package firmware

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Updater receives an uploaded firmware image. The engine never looks
// inside: this is opaque transport glue at the admin boundary.
type Updater interface {
	Apply(r io.Reader) error
}

// Staging writes the image to a staging path and requests a restart so
// the external supervisor picks it up. Write-then-rename keeps a partial
// upload from ever sitting at the staging path.
type Staging struct {
	path    string
	restart func(reason string)
}

// NewStaging creates a staging updater. restart may be nil.
func NewStaging(path string, restart func(string)) (*Staging, error) {
	if path == "" {
		return nil, errors.New("firmware: staging path required")
	}
	return &Staging{path: path, restart: restart}, nil
}

func (s *Staging) Apply(r io.Reader) error {
	tmp := s.path + ".partial"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("firmware: stage: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("firmware: write image: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("firmware: commit image: %w", err)
	}

	log.WithFields(log.Fields{"path": s.path, "bytes": n}).Info("firmware image staged")

	if s.restart != nil {
		// Delayed so the admin response reaches the client first.
		go func() {
			time.Sleep(250 * time.Millisecond)
			s.restart("firmware image staged")
		}()
	}
	return nil
}
