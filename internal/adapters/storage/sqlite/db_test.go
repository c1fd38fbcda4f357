package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_PathWithURIReservedChars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clinic?v=1#a 50%.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(context.Background(), db))

	// el archivo se crea con el nombre literal, no truncado en '?' ni '#'
	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "clinic"))
	assert.True(t, os.IsNotExist(err), "DSN must not be cut at '?'")

	// los parámetros del driver siguen aplicándose
	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestDSN_EscapesPath(t *testing.T) {
	got := dsn("/data/a?b#c.db")
	assert.Contains(t, got, "file:/data/a%3Fb%23c.db?")
	assert.Contains(t, got, "_pragma=foreign_keys%281%29")
	assert.Contains(t, got, "_time_format=sqlite")
}
