package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestNew_Backends_WriteJSON(t *testing.T) {
	for _, backend := range []string{BackendSlog, BackendZap} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(backend, &buf)
			require.NoError(t, err)

			l.With("module", "http").Info(context.Background(), "request", "status", 200)
			l.Debug(context.Background(), "hidden")

			if z, ok := l.(*ZapLogger); ok {
				_ = z.Sync()
			}

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1, "debug must be filtered at info level")
			assert.Equal(t, "request", lines[0]["msg"])
			assert.Equal(t, "http", lines[0]["module"])
			assert.EqualValues(t, 200, lines[0]["status"])
		})
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("logrus", &bytes.Buffer{})
	require.Error(t, err)
}
