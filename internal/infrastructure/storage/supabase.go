// Package storage almacenamiento de los PDF de facturas: Supabase Storage o disco local.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	storagego "github.com/supabase-community/storage-go"

	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
)

var _ bookkeeping.DocumentStore = (*SupabaseStore)(nil)

// SupabaseStore adaptador de Supabase Storage con la service role key.
type SupabaseStore struct {
	baseURL string // https://<proyecto>.supabase.co/storage/v1
	bucket  string
	client  *storagego.Client
}

// NewSupabaseStore construye el cliente para el bucket indicado.
func NewSupabaseStore(projectURL, bucket, serviceKey string) *SupabaseStore {
	baseURL := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &SupabaseStore{
		baseURL: baseURL,
		bucket:  bucket,
		client:  storagego.NewClient(baseURL, serviceKey, map[string]string{"apikey": serviceKey}),
	}
}

// Upload sube el objeto sin sobrescribir uno existente.
func (s *SupabaseStore) Upload(_ context.Context, path string, content []byte, contentType string) error {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(content), storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("supabase storage: subir %s: %w", path, err)
	}
	return nil
}

// SignedURL URL de lectura válida durante ttl.
func (s *SupabaseStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, path, int(ttl.Seconds()))
	if err != nil {
		return "", fmt.Errorf("supabase storage: firmar %s: %w", path, err)
	}
	signed := resp.SignedURL
	if signed == "" || strings.HasSuffix(signed, "/storage/v1") {
		return "", fmt.Errorf("supabase storage: respuesta sin signedURL")
	}
	// según la versión del cliente la ruta llega relativa al endpoint de storage
	if !strings.HasPrefix(signed, "http://") && !strings.HasPrefix(signed, "https://") {
		signed = s.baseURL + signed
	}
	return signed, nil
}

// Delete elimina el objeto. No falla si no existía.
func (s *SupabaseStore) Delete(_ context.Context, path string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("supabase storage: borrar %s: %w", path, err)
	}
	return nil
}
