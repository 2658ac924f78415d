package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "info", Format: logger.FormatJSON}, logger.WithOutput(&buf))
	require.NoError(t, err)

	log.Info("upload complete", "file_id", "5f1e7d35c7ba06511e683b21")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "upload complete", record["msg"])
	assert.Equal(t, "5f1e7d35c7ba06511e683b21", record["file_id"])
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "warn", Format: logger.FormatText}, logger.WithOutput(&buf))
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_StaticAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Format: logger.FormatText}, logger.WithOutput(&buf), logger.WithAttr(slog.String("service", "files-manager")))
	require.NoError(t, err)

	log.Info("hello")
	assert.Contains(t, buf.String(), "service=files-manager")
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := logger.New(logger.Config{Level: "verbose"})
	assert.Error(t, err)

	_, err = logger.New(logger.Config{Format: "xml"})
	assert.Error(t, err)
}
