package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	ctx := WithContext(context.Background(), log)

	fromCtx := FromContext(ctx)
	fromCtx.Info().Str("component", "ingest").Msg("batch done")

	out := buf.String()
	require.Contains(t, out, `"component":"ingest"`)
	require.Contains(t, out, "batch done")
	require.Contains(t, out, `"time":`, "timestamps are attached")
}

func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	// a bare context must still yield a usable logger
	log := FromContext(context.Background())
	log.Debug().Msg("no-op without a stored logger")
}
