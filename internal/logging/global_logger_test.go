package logging

import (
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatEntry(t *testing.T, entry *log.Entry) string {
	t.Helper()
	out, err := (&LogFormatter{}).Format(entry)
	require.NoError(t, err)
	return string(out)
}

func TestLogFormatter_Basic(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.StandardLogger(),
		Time:    time.Date(2026, 8, 29, 20, 14, 4, 0, time.UTC),
		Level:   log.InfoLevel,
		Message: "reconciled 42 models\n",
	}

	line := formatEntry(t, entry)

	assert.True(t, strings.HasPrefix(line, "[2026-08-29 20:14:04] [--------] [info ]"), line)
	assert.Contains(t, line, "reconciled 42 models")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLogFormatter_RequestIDAndFields(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.StandardLogger(),
		Time:    time.Now(),
		Level:   log.WarnLevel,
		Message: "upstream slow",
		Data: log.Fields{
			"request_id": "abc12345",
			"limit":      100,
		},
	}

	line := formatEntry(t, entry)

	assert.Contains(t, line, "[abc12345]")
	assert.Contains(t, line, "[warn ]")
	assert.Contains(t, line, "limit=100")
	assert.NotContains(t, line, "request_id=")
}

func TestConfigureLogOutput_CreatesLogDir(t *testing.T) {
	dir := t.TempDir() + "/logs"

	require.NoError(t, ConfigureLogOutput(true, dir))
	defer func() {
		require.NoError(t, ConfigureLogOutput(false, ""))
	}()

	log.Info("write something to create the file")
	assert.DirExists(t, dir)
}
