package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	return func() time.Time { return t }
}

func TestLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mirror.txt")
	l := New(path)
	l.now = fixedClock()

	l.Log("hello")
	l.Logf("lamp u=%.2f", 1.5)

	want := []string{"[2024-05-06 07:08:09] hello", "[2024-05-06 07:08:09] lamp u=1.50"}
	assert.Equal(t, want, l.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	l.Log("a")
	assert.Len(t, l.Lines(), 1)
}

func TestTail(t *testing.T) {
	l := New("")
	l.now = fixedClock()
	for i := 0; i < 5; i++ {
		l.Logf("%d", i)
	}
	tail := l.Tail(2)
	require.Len(t, tail, 2)
	assert.True(t, strings.HasSuffix(tail[0], "] 3"))
	assert.True(t, strings.HasSuffix(tail[1], "] 4"))
	assert.Len(t, l.Tail(50), 5)
	assert.Nil(t, l.Tail(0))

	// Callers own the returned slice.
	tail[0] = "changed"
	assert.NotEqual(t, "changed", l.Tail(2)[0])
}

func TestBounded(t *testing.T) {
	l := New("")
	for i := 0; i < MaxLines+10; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, MaxLines)
	assert.True(t, strings.HasSuffix(lines[0], fmt.Sprintf("line %d", 10)))
}

func TestConcurrentLog(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "log.txt"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Log("x")
			}
		}()
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 160)
}
