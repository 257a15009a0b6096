// Package storage archive les documents PDF générés, sur disque local ou S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
)

var _ billing.DocumentStorage = (*LocalStorage)(nil)

// LocalStorage stocke les documents sur le disque local (développement).
type LocalStorage struct {
	basePath string
}

// NewLocalStorage crée le répertoire racine si nécessaire.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("créer répertoire de stockage: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save écrit le document et retourne son chemin relatif.
func (s *LocalStorage) Save(_ context.Context, filename string, data []byte) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.Base(filename))
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("écrire document: %w", err)
	}
	return filepath.Base(filename), nil
}

// Load relit un document archivé.
func (s *LocalStorage) Load(_ context.Context, filename string) ([]byte, error) {
	fullPath := filepath.Join(s.basePath, filepath.Base(filename))
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document introuvable: %s", filename)
		}
		return nil, fmt.Errorf("ouvrir document: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("lire document: %w", err)
	}
	return buf.Bytes(), nil
}
