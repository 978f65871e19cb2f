package storage

import (
	"fmt"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/pkg/config"
)

// New construye el almacenamiento según STORAGE_DRIVER. Con el driver local también
// devuelve el *LocalStore para montar la ruta de descargas; con supabase es nil.
func New(cfg config.StorageConfig, secret string) (bookkeeping.DocumentStore, *LocalStore, error) {
	switch cfg.Driver {
	case "supabase":
		return NewSupabaseStore(cfg.SupabaseURL, cfg.Bucket, cfg.SupabaseKey), nil, nil
	case "local", "":
		local, err := NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL, secret)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	default:
		return nil, nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
