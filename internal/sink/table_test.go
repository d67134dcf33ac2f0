package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"random-pairs-service/internal/domain"
)

func TestRenderTableListsEveryPair(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []domain.Round{sampleRound(1)})

	out := buf.String()
	require.Contains(t, out, "PARTICIPANT 1")
	require.Contains(t, out, "Alice <a@x.io>")
	require.Contains(t, out, "Bob <b@x.io>")
	require.Contains(t, out, "(bye)")
}
