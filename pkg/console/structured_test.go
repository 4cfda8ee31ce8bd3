package console

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	c := NewStructured(&buf, slog.LevelInfo).With("handler", "backup-reporter")

	c.LogInfo("Scanning region: %s", "us-east-1")
	c.LogWarning("slow %d", 1)
	c.LogError("failed")
	c.LogSuccess("Report uploaded to %s", "s3://b/k")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "Scanning region: us-east-1", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "backup-reporter", entries[0]["handler"])
	assert.Equal(t, "WARN", entries[1]["level"])
	assert.Equal(t, "ERROR", entries[2]["level"])
	assert.Equal(t, "success", entries[3]["outcome"])
}

func TestStructuredStatusLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	status := NewStructured(&buf, slog.LevelInfo).Status("Describing VPCs")
	status.Update("Describing subnets")
	status.Stop()
	assert.Empty(t, buf.String(), "status steps are hidden at info level")

	status = NewStructured(&buf, slog.LevelDebug).Status("Describing VPCs")
	status.Update("Describing subnets")
	status.Stop()

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 3)
	assert.Equal(t, "start", entries[0]["step"])
	assert.Equal(t, "Describing subnets", entries[2]["msg"])
	assert.Equal(t, "done", entries[2]["step"])
	assert.Contains(t, entries[2], "elapsed")
}

func TestNewStructuredFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.True(t, NewStructuredFromEnv().Logger().Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "bogus")
	assert.False(t, NewStructuredFromEnv().Logger().Enabled(context.Background(), slog.LevelDebug))
}
