package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

// LocalStorageImpl grava os artefatos em um diretório local, mantendo o layout das chaves.
// O bucket é ignorado na escrita; na leitura, chaves absolutas são lidas diretamente.
type LocalStorageImpl struct {
	dir string
}

// NewLocalStorage cria o store local; dir vazio usa o diretório atual.
func NewLocalStorage(dir string) (repository.ObjectStore, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStorageImpl{dir: abs}, nil
}

// resolve junta a chave ao diretório e recusa caminhos que escapam dele.
func (s *LocalStorageImpl) resolve(key string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q resolves outside %s", key, s.dir)
	}
	return path, nil
}

func (s *LocalStorageImpl) PutObject(_ context.Context, _, key string, body []byte, _ string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	return path, nil
}

func (s *LocalStorageImpl) GetObject(_ context.Context, _, key string) ([]byte, error) {
	path := key
	if !filepath.IsAbs(path) {
		var err error
		if path, err = s.resolve(key); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}
