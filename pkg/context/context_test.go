package context

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultAppContext_FlagsOverride(t *testing.T) {
	ctx, err := DefaultAppContext(context.Background(), GlobalFlags{Quiet: true, NoColor: true})
	require.NoError(t, err)

	assert.True(t, ctx.Config.App.Quiet)
	assert.False(t, ctx.Color())
	assert.Equal(t, zerolog.Disabled, ctx.Logger.GetLevel())
	assert.Equal(t, "locscope", ctx.Config.App.Name)
	assert.NotNil(t, ctx.Viper)
}

func Test_InitAppContext_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  format: json\nanalysis:\n  batch_size: 50\n"), 0o644))

	ctx, err := InitAppContext(context.Background(), GlobalFlags{ConfigPath: path, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "json", ctx.Config.App.Format)
	assert.Equal(t, 50, ctx.Config.Analysis.BatchSize)
	assert.True(t, ctx.Config.App.Debug)
	assert.Equal(t, zerolog.DebugLevel, ctx.Logger.GetLevel())
	assert.Equal(t, path, ctx.Viper.ConfigFileUsed())
}

func Test_InitAppContext_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  batch_size: -3\n"), 0o644))

	_, err := InitAppContext(context.Background(), GlobalFlags{ConfigPath: path})
	require.Error(t, err)
}
