package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

type fileKeyStore struct {
	logger *slog.Logger
}

// NewFileKeyStore creates a KeyStore on the local filesystem. Permission
// hardening failures are logged as warnings and otherwise ignored.
func NewFileKeyStore(logger *slog.Logger) KeyStore {
	return &fileKeyStore{logger: logger}
}

// Load reads the whole file at path.
func (f *fileKeyStore) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", keysDomain.ErrKeyFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return data, nil
}

// Save writes data to path with 0600 permissions inside a 0700 directory.
func (f *fileKeyStore) Save(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, keysDomain.DirPermissions); err != nil {
			return fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, keysDomain.FilePermissions); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	// WriteFile only applies the mode on creation.
	if err := os.Chmod(path, keysDomain.FilePermissions); err != nil {
		f.logger.Warn("failed to restrict key file permissions",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	return nil
}
