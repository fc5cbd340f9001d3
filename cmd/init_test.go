package cmd

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ecomseed/internal/config"
	"github.com/Rana718/ecomseed/template"
)

func TestInitializeProject(t *testing.T) {
	color.NoColor = true
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile(".env", []byte("API_KEY=abc"), 0644))
	require.NoError(t, initializeProject(template.SQLite))

	data, err := os.ReadFile(config.DefaultConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"provider": "sqlite"`)

	env, err := os.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, "API_KEY=abc\n\n# Added by ecomseed\nDATABASE_URL=sqlite://./ecommerce.db\n", string(env))

	err = initializeProject(template.SQLite)
	assert.ErrorContains(t, err, "already exists")
}

func TestHandleEnvFileKeepsExistingURL(t *testing.T) {
	t.Chdir(t.TempDir())

	original := "DATABASE_URL=postgres://me@db/shop\n"
	require.NoError(t, os.WriteFile(".env", []byte(original), 0644))
	require.NoError(t, handleEnvFile("DATABASE_URL=other\n"))

	env, err := os.ReadFile(".env")
	require.NoError(t, err)
	assert.Equal(t, original, string(env))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "schema", "generate", "status", "reset"} {
		assert.True(t, names[want], want)
	}

	for _, flag := range []string{"seed", "start", "end", "policy", "granularity", "users", "behavior", "create-schema", "catalog"} {
		assert.NotNil(t, generateCmd.Flags().Lookup(flag), flag)
	}
}
