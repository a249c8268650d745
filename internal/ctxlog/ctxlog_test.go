package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to a discarding logger", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
		assert.Same(t, discard, logger)
	})

	t.Run("returns the attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "uri", "/etc/syslog-ng.conf")

	FromContext(ctx).Info("Parsed document.")
	assert.Contains(t, buf.String(), "uri=/etc/syslog-ng.conf")
	assert.Contains(t, buf.String(), `msg="Parsed document."`)
}
