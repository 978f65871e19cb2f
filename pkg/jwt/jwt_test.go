package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/hst-contabilidad/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConScopes(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "operator", "hst-test", []string{pkgjwt.ScopeRead, pkgjwt.ScopeWrite}, time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.True(t, claims.HasScope(pkgjwt.ScopeWrite))
	assert.False(t, claims.HasScope(pkgjwt.ScopeDelete))
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "operator", "hst-test", nil, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "operator", "hst-test", nil, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "operator", "hst-test", nil, time.Hour)
	assert.Error(t, err)
}

func TestSignDownload_RoundTrip(t *testing.T) {
	sig, err := pkgjwt.SignDownload(testSecret, "hst/abc.pdf", 10*time.Minute)
	require.NoError(t, err)

	path, err := pkgjwt.VerifyDownload(testSecret, sig)
	require.NoError(t, err)
	assert.Equal(t, "hst/abc.pdf", path)
}

func TestSignDownload_Vencida(t *testing.T) {
	sig, err := pkgjwt.SignDownload(testSecret, "hst/abc.pdf", -time.Second)
	require.NoError(t, err)

	_, err = pkgjwt.VerifyDownload(testSecret, sig)
	assert.Error(t, err)
}

func TestParse_FirmaDeDescargaNoEsSesion(t *testing.T) {
	sig, err := pkgjwt.SignDownload(testSecret, "hst/abc.pdf", time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, sig)
	assert.Error(t, err)
}
