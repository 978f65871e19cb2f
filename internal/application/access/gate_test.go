package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hst-contabilidad/internal/application/access"
	"github.com/jhoicas/hst-contabilidad/internal/domain"
	"github.com/jhoicas/hst-contabilidad/internal/domain/entity"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/memory"
)

func TestForToken_SinTokenSiempreAutoriza(t *testing.T) {
	g := access.ForToken("", nil)
	assert.IsType(t, access.Unrestricted{}, g)
	assert.NoError(t, g.Authorize(context.Background()))
}

func TestTokenChecked_Casos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	links := store.ShareLinks()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.NoError(t, links.Create(ctx, &entity.ShareLink{Token: "activo", Active: true}))
	require.NoError(t, links.Create(ctx, &entity.ShareLink{Token: "inactivo", Active: false}))
	require.NoError(t, links.Create(ctx, &entity.ShareLink{Token: "vencido", Active: true, ExpiresAt: &past}))
	require.NoError(t, links.Create(ctx, &entity.ShareLink{Token: "vigente", Active: true, ExpiresAt: &future}))
	require.NoError(t, links.Create(ctx, &entity.ShareLink{Token: "justo", Active: true, ExpiresAt: &now}))

	cases := []struct {
		token string
		ok    bool
	}{
		{"activo", true},
		{"vigente", true},
		{"inactivo", false},
		{"vencido", false},
		{"justo", false},
		{"desconocido", false},
	}
	for _, c := range cases {
		g := access.TokenChecked{Token: c.token, Lookup: links, Now: func() time.Time { return now }}
		err := g.Authorize(ctx)
		if c.ok {
			assert.NoError(t, err, c.token)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrUnauthorized, c.token)
	}
}

func TestTokenChecked_ErrorDelAlmacen(t *testing.T) {
	store := memory.NewStore()
	store.FailOn("share_links.GetByToken", errors.New("503"))

	err := access.ForToken("x", store.ShareLinks()).Authorize(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}
