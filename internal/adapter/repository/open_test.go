package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/config"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

func TestOpen_Memory(t *testing.T) {
	backend, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory}, nil)
	require.NoError(t, err)
	defer backend.Close()

	assert.NoError(t, backend.Health(context.Background()))
	_, err = backend.Repositories.Housing.Get(context.Background(), domain.DefaultPlanKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "nested", "plan.db")}

	backend, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer backend.Close()

	assert.Equal(t, config.DriverSQLite, backend.Driver)
	assert.NoError(t, backend.Health(ctx))
	assert.NoError(t, backend.Repositories.Annuities.Replace(ctx, domain.DefaultPlanKey, []domain.Annuity{domain.DefaultAnnuity()}))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"}, nil)
	assert.ErrorContains(t, err, "unknown store driver")
}
