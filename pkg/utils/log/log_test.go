package log

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/locscope/pkg/configs"
)

func Test_New_LevelPriority(t *testing.T) {
	cfg := &configs.LogConfig{Level: "error", JSON: true, Mode: "console"}

	cases := []struct {
		name string
		app  configs.AppConfig
		want zerolog.Level
	}{
		{"config", configs.AppConfig{}, zerolog.ErrorLevel},
		{"verbose", configs.AppConfig{Verbose: true}, zerolog.InfoLevel},
		{"debug", configs.AppConfig{Debug: true, Verbose: true}, zerolog.DebugLevel},
		{"quiet", configs.AppConfig{Quiet: true, Debug: true}, zerolog.Disabled},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		l := New(context.Background(), cfg, &c.app, &buf)
		if got := l.GetLevel(); got != c.want {
			t.Fatalf("%s: level %v, want %v", c.name, got, c.want)
		}
	}
}

func Test_New_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(context.Background(), &configs.LogConfig{Level: "warn", JSON: true}, &configs.AppConfig{Name: "locscope"}, &buf)
	l.Info().Msg("hidden")
	l.Warn().Str("file", "a.py").Msg("skipped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "a.py", entry["file"])
	assert.Equal(t, "skipped", entry["message"])
}

func Test_New_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "locscope.log")
	var console bytes.Buffer
	cfg := &configs.LogConfig{Level: "info", JSON: true, Mode: "both", FilePath: path, MaxSize: 1}
	l := New(context.Background(), cfg, &configs.AppConfig{NoColor: true}, &console)
	l.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, console.String(), "hello")
}

func Test_ParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("WARNING"))
	assert.Equal(t, zerolog.TraceLevel, parseLogLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("loud"))
}
