package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_RoundTrip(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "cart.json")
	ownerID := uuid.NewString()

	repo, err := repository.NewFile(path)
	require.NoError(t, err)

	cart := randomCart()
	require.NoError(t, repo.Save(ctx, ownerID, cart))

	loaded, found, err := repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, found)

	assertCartEqual(t, cart, loaded)
}

func TestFileRepository_MissingFileIsAbsent(t *testing.T) {
	ctx := t.Context()

	repo, err := repository.NewFile(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)

	_, found, err := repo.Load(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileRepository_MalformedFileIsAbsent(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "cart.json")

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo, err := repository.NewFile(path)
	require.NoError(t, err)

	_, found, err := repo.Load(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "cart.json")
	ownerID := uuid.NewString()

	repo, err := repository.NewFile(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, ownerID, randomCart()))

	latest := randomCart()
	require.NoError(t, repo.Save(ctx, ownerID, latest))

	loaded, found, err := repo.Load(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, found)

	assertCartEqual(t, latest, loaded)
}

func TestFileRepository_EmptyArguments(t *testing.T) {
	ctx := t.Context()

	_, err := repository.NewFile("")
	require.EqualError(t, err, "path is empty")

	repo, err := repository.NewFile(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)

	_, _, err = repo.Load(ctx, "")
	require.EqualError(t, err, "ownerID is empty")

	err = repo.Save(ctx, "", randomCart())
	require.EqualError(t, err, "ownerID is empty")
}
