package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/genricoloni/presenced/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArtworkCache_PutGet(t *testing.T) {
	dir := t.TempDir()
	c := Open(zap.NewNop(), dir)
	defer c.Close()

	require.Equal(t, filepath.Join(dir, FileName), c.Path())

	key := domain.NewAlbumKey("A", "Alb")
	_, ok := c.Get(key)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Put(key, "http://img/x.jpg"))

	url, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "http://img/x.jpg", url)
	assert.Equal(t, 1, c.Len())
}

func TestArtworkCache_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	key := domain.NewAlbumKey("Queen", "A Night at the Opera")

	first := Open(zap.NewNop(), dir)
	require.NoError(t, first.Put(key, "https://lastfm.example/cover.png"))
	require.NoError(t, first.Close())

	second := Open(zap.NewNop(), dir)
	defer second.Close()

	url, ok := second.Get(key)
	require.True(t, ok, "entry should be durable across reopen")
	assert.Equal(t, "https://lastfm.example/cover.png", url)
}

func TestArtworkCache_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("this is not a bolt database"), 0o600))

	c := Open(zap.NewNop(), dir)
	defer c.Close()

	assert.Equal(t, path, c.Path(), "a fresh database should replace the corrupt one")
	assert.Equal(t, 0, c.Len())
	assert.FileExists(t, path+".corrupt")

	key := domain.NewAlbumKey("A", "Alb")
	require.NoError(t, c.Put(key, "http://img/x.jpg"))
	_, ok := c.Get(key)
	assert.True(t, ok)
}

func TestArtworkCache_MemoryOnly(t *testing.T) {
	c := Open(zap.NewNop(), "")
	defer c.Close()

	assert.Empty(t, c.Path())

	key := domain.NewAlbumKey("A", "Alb")
	require.NoError(t, c.Put(key, "http://img/x.jpg"))
	url, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "http://img/x.jpg", url)
	assert.Equal(t, 1, c.Len())
}
