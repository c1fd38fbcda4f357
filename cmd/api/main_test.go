package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/adapters/storage/sqlite"
)

func TestParseProcedureFlags(t *testing.T) {
	got, err := parseProcedureFlags([]string{"3:2024-01-10", " 4:2024-01-12 "})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ProcedureID)
	assert.Equal(t, "2024-01-10", got[0].Date.Format(dateLayout))
	assert.Equal(t, int64(4), got[1].ProcedureID)

	for _, bad := range []string{"3", "x:2024-01-10", "3:10/01/2024"} {
		_, err := parseProcedureFlags([]string{bad})
		assert.Error(t, err, bad)
	}

	empty, err := parseProcedureFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_CreateAndGet_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, sqlite.EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, `INSERT INTO owner (id, first_name, last_name) VALUES (1, 'Anna', 'Kowalska')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO "procedure" (id, name, description) VALUES (1, 'Vaccination', 'Rabies')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := runCLI(t, "animal", "create",
		"--name", "Rex", "--admission-date", "2024-01-10", "--owner", "1",
		"--procedure", "1:2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "Created animal: 1\n", out)

	out, err = runCLI(t, "animal", "get", "1", "--json")
	require.NoError(t, err)

	var got struct {
		Name  string `json:"name"`
		Owner struct {
			LastName string `json:"last_name"`
		} `json:"owner"`
		Procedures []struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"procedures"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "Kowalska", got.Owner.LastName)
	require.Len(t, got.Procedures, 1)
	assert.Equal(t, "Vaccination", got.Procedures[0].Name)
	assert.Equal(t, "2024-01-10", got.Procedures[0].Date)

	out, err = runCLI(t, "animal", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner:     Anna Kowalska (1)")
}

func TestCLI_Create_UnknownOwner(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	_, err := runCLI(t, "animal", "create", "--name", "Rex", "--admission-date", "2024-01-10", "--owner", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner_id 9 does not exist")
}

func TestCLI_Create_DefaultMemoryDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "")

	out, err := runCLI(t, "animal", "create",
		"--name", "Rex", "--admission-date", "2024-01-10", "--owner", "1",
		"--procedure", "1:2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "Created animal: 1\n", out)
}

func TestCLI_Get_NotFound(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	_, err := runCLI(t, "animal", "get", "5")
	require.EqualError(t, err, "animal 5 not found")
}

func TestCLI_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := runCLI(t, "animal", "get", "1")
	require.Error(t, err)
}
