package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add partner tags index", "add_partner_tags_index"},
		{"Add-Partner-Tags", "add_partner_tags"},
		{"ADD__SEARCH__VECTOR", "add_search_vector"},
		{"  spaces  ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"شرکاء partners", "partners"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add partner tags index", "GIN index on analysis tags")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, mf.Version+"_add_partner_tags_index.up.sql", filepath.Base(mf.UpPath))
	assert.Equal(t, mf.Version+"_add_partner_tags_index.down.sql", filepath.Base(mf.DownPath))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add partner tags index")
	assert.Contains(t, string(up), "-- GIN index on analysis tags")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(down), "-- Rollback of add partner tags index"))
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"20260301090100_add_partner_search_vector.up.sql",
		"20260301090100_add_partner_search_vector.down.sql",
		"20260301090000_create_partners.up.sql",
		"20260301090000_create_partners.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260301090000_create_partners",
		"20260301090100_add_partner_search_vector",
	}, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListMigrations_RepositoryMigrations(t *testing.T) {
	names, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	assert.Contains(t, names, "20260301090000_create_partners")
	assert.Contains(t, names, "20260301090100_add_partner_search_vector")
}
