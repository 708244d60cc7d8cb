package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("prod emits JSON", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf, "prod", "info")
		l.Info("reference data loaded", "rules", 4)

		assert.True(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), `"rules":4`)
	})

	t.Run("dev emits text", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf, "dev", "info")
		l.Info("reference data loaded")

		assert.False(t, strings.HasPrefix(buf.String(), "{"))
		assert.Contains(t, buf.String(), "reference data loaded")
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf, "dev", "warn")
		l.Info("suppressed")
		l.Warn("kept")

		assert.NotContains(t, buf.String(), "suppressed")
		assert.Contains(t, buf.String(), "kept")
	})
}
