package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stagingDir is a scratch directory for one message's PDF attachments. PDF
// extraction reads from disk, so attachment bytes are staged under a unique
// per-message directory and removed when the message is done.
type stagingDir struct {
	path string
}

func newStagingDir(baseDir string) (*stagingDir, error) {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "archivo-staging")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging base: %w", err)
	}
	path, err := os.MkdirTemp(baseDir, "msg-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &stagingDir{path: path}, nil
}

// Put writes attachment bytes to a uniquely named file inside the staging
// directory, sidestepping collisions between attachments sharing a filename.
func (s *stagingDir) Put(filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String()[:8], filepath.Base(filename))
	path := filepath.Join(s.path, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to stage attachment: %w", err)
	}
	return path, nil
}

func (s *stagingDir) Cleanup() {
	os.RemoveAll(s.path)
}
