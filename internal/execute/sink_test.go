package execute

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sink.Line("line")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 16*50)
	for _, line := range lines {
		assert.Equal(t, "line", line)
	}
}

func TestSinkLineAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	sink.Line("no newline")
	sink.Line("has newline\n")
	sink.Line("")

	assert.Equal(t, "no newline\nhas newline\n", buf.String())
}

func TestNewSinkNilWriter(t *testing.T) {
	sink := NewSink(nil)
	n, err := sink.Write([]byte("dropped"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
}
