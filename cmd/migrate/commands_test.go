package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"up", "down", "step", "goto", "version", "force", "create", "list"} {
		assert.True(t, names[want], want)
	}
}

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--path", dir, "create", "add partner tags index", "GIN on tags")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "_add_partner_tags_index.up.sql"))
	_, err = os.Stat(lines[1])
	assert.NoError(t, err)

	out, err = execute(t, "--path", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "_add_partner_tags_index")
}

func TestArgumentValidation(t *testing.T) {
	_, err := execute(t, "step", "many")
	assert.ErrorContains(t, err, "invalid step count")

	_, err = execute(t, "goto")
	assert.Error(t, err)

	_, err = execute(t, "create")
	assert.Error(t, err)
}

func TestOptionsPath(t *testing.T) {
	o := &options{}
	assert.True(t, strings.HasSuffix(o.path(""), string(filepath.Separator)+defaultMigrationsPath))
	assert.True(t, strings.HasSuffix(o.path("db/migrations"), filepath.Join("db", "migrations")))

	o.migrationsPath = "/srv/crm/migrations"
	assert.Equal(t, "/srv/crm/migrations", o.path("ignored"))
}
