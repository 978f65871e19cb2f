package storage_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/storage"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestLocalStore_SubirFirmarAbrir(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStore(t.TempDir(), "http://api.test/", testSecret)
	require.NoError(t, err)

	require.NoError(t, s.Upload(ctx, "hst/abc.pdf", []byte("%PDF-1.4"), "application/pdf"))
	assert.Error(t, s.Upload(ctx, "hst/abc.pdf", []byte("otro"), "application/pdf"), "no sobrescribe")

	signed, err := s.SignedURL(ctx, "hst/abc.pdf", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "/files/hst/abc.pdf", u.Path)

	full, err := s.Open("hst/abc.pdf", u.Query().Get("sig"))
	require.NoError(t, err)
	content, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	_, err = s.Open("hst/otro.pdf", u.Query().Get("sig"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la firma es para otra ruta")

	require.NoError(t, s.Delete(ctx, "hst/abc.pdf"))
	require.NoError(t, s.Delete(ctx, "hst/abc.pdf"))
	_, err = s.Open("hst/abc.pdf", u.Query().Get("sig"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_RutaFueraDeRaiz(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir(), "http://api.test", testSecret)
	require.NoError(t, err)

	err = s.Upload(context.Background(), "../fuera.pdf", []byte("x"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupabaseStore(t *testing.T) {
	var uploaded, deleted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/storage/v1/object/invoices/hst/abc.pdf":
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "%PDF", string(body))
			assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
			assert.Equal(t, "false", r.Header.Get("x-upsert"))
			uploaded = true
			_ = json.NewEncoder(w).Encode(map[string]string{"Key": "invoices/hst/abc.pdf"})
		case r.Method == http.MethodPost && r.URL.Path == "/storage/v1/object/sign/invoices/hst/abc.pdf":
			var in struct {
				ExpiresIn int `json:"expiresIn"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, 600, in.ExpiresIn)
			_ = json.NewEncoder(w).Encode(map[string]string{"signedURL": "/object/sign/invoices/hst/abc.pdf?token=t0k"})
		case r.Method == http.MethodDelete && r.URL.Path == "/storage/v1/object/invoices":
			var in struct {
				Prefixes []string `json:"prefixes"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, []string{"hst/abc.pdf"}, in.Prefixes)
			deleted = true
			_, _ = w.Write([]byte("[]"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"statusCode":"404","error":"not_found","message":"Object not found"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	s := storage.NewSupabaseStore(srv.URL+"/", "invoices", "service-key")

	require.NoError(t, s.Upload(ctx, "hst/abc.pdf", []byte("%PDF"), "application/pdf"))
	assert.True(t, uploaded)

	signed, err := s.SignedURL(ctx, "hst/abc.pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/sign/invoices/hst/abc.pdf?token=t0k", signed)

	require.NoError(t, s.Delete(ctx, "hst/abc.pdf"))
	assert.True(t, deleted)

	err = s.Upload(ctx, "otro/x.pdf", []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "subir otro/x.pdf"))
}
