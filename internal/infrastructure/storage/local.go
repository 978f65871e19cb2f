package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	pkgjwt "github.com/jhoicas/hst-contabilidad/pkg/jwt"
)

var _ bookkeeping.DocumentStore = (*LocalStore)(nil)

// FilesRoute ruta HTTP que sirve las descargas firmadas del almacenamiento local.
const FilesRoute = "/files"

// LocalStore guarda los documentos en disco. Las URLs firmadas son JWT cortos
// verificados por el handler de /files.
type LocalStore struct {
	root    string
	baseURL string
	secret  string
}

// NewLocalStore construye el almacenamiento bajo root. baseURL es la URL pública del API.
func NewLocalStore(root, baseURL, secret string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage local: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("storage local: crear %s: %w", abs, err)
	}
	return &LocalStore{root: abs, baseURL: strings.TrimRight(baseURL, "/"), secret: secret}, nil
}

func (s *LocalStore) Upload(_ context.Context, path string, content []byte, _ string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("storage local: %w", err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("storage local: crear %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("storage local: escribir %s: %w", path, err)
	}
	return f.Close()
}

func (s *LocalStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if _, err := s.resolve(path); err != nil {
		return "", err
	}
	sig, err := pkgjwt.SignDownload(s.secret, path, ttl)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s/%s?sig=%s", s.baseURL, FilesRoute, path, url.QueryEscape(sig)), nil
}

// Delete elimina el archivo. No falla si no existía.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage local: borrar %s: %w", path, err)
	}
	return nil
}

// Open verifica la firma y devuelve la ruta en disco del documento pedido.
// domain.ErrUnauthorized si la firma no corresponde a path o venció.
func (s *LocalStore) Open(path, sig string) (string, error) {
	signed, err := pkgjwt.VerifyDownload(s.secret, sig)
	if err != nil || signed != path {
		return "", domain.ErrUnauthorized
	}
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("storage local: %w", err)
	}
	return full, nil
}

// resolve ruta absoluta de path dentro de root; rechaza rutas que escapen de él.
func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" || strings.Contains(path, "\x00") {
		return "", fmt.Errorf("%w: ruta vacía", domain.ErrInvalidInput)
	}
	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: ruta fuera del almacenamiento", domain.ErrInvalidInput)
	}
	return full, nil
}
