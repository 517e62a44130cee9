package log_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/pkg/log"
)

func TestSetupWritesLogFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := log.Setup(logDir, zerolog.InfoLevel)
	require.NoError(t, err)

	logger.Info().Str("dataset", "sample").Msg("analysis complete")
	require.NoError(t, closer())

	data, err := os.ReadFile(filepath.Join(logDir, log.LogFileName))
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "analysis complete", entry["message"])
	assert.Equal(t, "sample", entry["dataset"])
	assert.Equal(t, "datalens", entry["component"])
}

func TestSetupLevelFilter(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := log.Setup(logDir, zerolog.InfoLevel)
	require.NoError(t, err)
	logger.Debug().Msg("hidden")
	require.NoError(t, closer())

	data, err := os.ReadFile(filepath.Join(logDir, log.LogFileName))
	require.NoError(t, err)
	assert.Empty(t, bytes.TrimSpace(data))
}

func TestSetupTruncatesPreviousRun(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := log.Setup(logDir, zerolog.InfoLevel)
	require.NoError(t, err)
	logger.Info().Msg("first run")
	require.NoError(t, closer())

	logger, closer, err = log.Setup(logDir, zerolog.InfoLevel)
	require.NoError(t, err)
	logger.Info().Msg("second run")
	require.NoError(t, closer())

	data, err := os.ReadFile(filepath.Join(logDir, log.LogFileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestToLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, log.ToLevel(true))
	assert.Equal(t, zerolog.InfoLevel, log.ToLevel(false))
}
