package logbuf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferKeepsMostRecentLines(t *testing.T) {
	b := New()
	for i := 0; i < 1005; i++ {
		_, err := fmt.Fprintf(b, "line %d\n", i)
		require.NoError(t, err)
	}

	lines := b.Lines()
	require.Len(t, lines, 1000)
	assert.Equal(t, "line 5\n", lines[0])
	assert.Equal(t, "line 1004\n", lines[len(lines)-1])
}

func TestLinesReturnsCopy(t *testing.T) {
	b := New()
	_, err := b.Write([]byte("original\n"))
	require.NoError(t, err)

	lines := b.Lines()
	lines[0] = "mutated"
	assert.Equal(t, []string{"original\n"}, b.Lines())
}
