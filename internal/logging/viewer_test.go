package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `2026-10-19 09:00:00 INF Starting server addr=:8000
2026-10-19 09:00:01 INF HTTP request method=GET path=/blogs status=200
2026-10-19 09:00:02 WRN HTTP request method=GET path=/blogs/9 status=404

2026-10-19 09:00:03 ERR Unhandled error error="data access (SELECT): timeout"
not a log line
2026-10-19 09:00:04 DBG Pool stats active=1
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), AppLogFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLine(t *testing.T) {
	l := ParseLine(3, "2026-10-19 09:00:03 ERR Unhandled error")
	assert.Equal(t, 3, l.Number)
	assert.Equal(t, "ERR", l.Level)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 3, 0, time.Local), l.Time)

	l = ParseLine(1, "2026-10-19 09:00:03 hello")
	assert.Empty(t, l.Level)
	assert.False(t, l.Time.IsZero())

	l = ParseLine(1, "short")
	assert.Empty(t, l.Level)
	assert.True(t, l.Time.IsZero())

	l = ParseLine(1, "not-a-timestamp-at-all INF x")
	assert.Empty(t, l.Level)
	assert.True(t, l.Time.IsZero())
}

func TestTail(t *testing.T) {
	path := writeLog(t, sampleLog)

	lines, err := Tail(path, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "not a log line", lines[0].Text)
	assert.Equal(t, "DBG", lines[1].Level)
	assert.Equal(t, 7, lines[1].Number)

	lines, err = Tail(path, 100)
	require.NoError(t, err)
	assert.Len(t, lines, 6)

	lines, err = Tail(path, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = Tail(filepath.Join(t.TempDir(), "missing.log"), 5)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	path := writeLog(t, sampleLog)

	lines, err := Filter(path, "http request", false)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	lines, err = Filter(path, "http request", true)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = Filter(path, "status=404", true)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "WRN", lines[0].Level)
}

func TestStats(t *testing.T) {
	path := writeLog(t, sampleLog)

	s, err := Stats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sampleLog)), s.FileSize)
	assert.Equal(t, 7, s.Lines)
	assert.Equal(t, 2, s.ByLevel["INF"])
	assert.Equal(t, 1, s.ByLevel["WRN"])
	assert.Equal(t, 1, s.ByLevel["ERR"])
	assert.Equal(t, 1, s.ByLevel["DBG"])
	assert.Equal(t, 2, s.Requests)
	assert.InDelta(t, 100.0/7, s.ErrorRate, 0.001)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local), s.First)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 4, 0, time.Local), s.Last)

	out := RenderSummary(s)
	assert.Contains(t, out, "Requests:")
	assert.Contains(t, out, "14.29%")
}

func TestStats_MissingFile(t *testing.T) {
	_, err := Stats(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}

func TestFollow(t *testing.T) {
	path := writeLog(t, "2026-10-19 09:00:00 INF old line\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got []Line
	)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, 5*time.Millisecond, func(l Line) {
			mu.Lock()
			got = append(got, l)
			mu.Unlock()
		})
	}()

	// Keep appending until the follower has started and picked a line up.
	require.Eventually(t, func() bool {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return false
		}
		_, _ = f.WriteString("2026-10-19 09:00:05 WRN new line\n")
		_ = f.Close()

		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, l := range got {
		assert.False(t, strings.Contains(l.Text, "old line"))
		assert.Equal(t, "WRN", l.Level)
	}
}

func TestFollow_ReopensReplacedFile(t *testing.T) {
	path := writeLog(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got []string
	)
	seen := func(text string) bool {
		mu.Lock()
		defer mu.Unlock()
		for _, g := range got {
			if g == text {
				return true
			}
		}
		return false
	}
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, 5*time.Millisecond, func(l Line) {
			mu.Lock()
			got = append(got, l.Text)
			mu.Unlock()
		})
	}()

	const before = "2026-10-19 09:00:00 INF before rotation"
	require.Eventually(t, func() bool {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return false
		}
		_, _ = f.WriteString(before + "\n")
		_ = f.Close()
		return seen(before)
	}, 2*time.Second, 20*time.Millisecond)

	// Rotate by rename; the new file is already larger than what was read.
	require.NoError(t, os.Rename(path, path+".1"))
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("2026-10-19 09:01:00 DBG padding line after rotation\n")
	}
	const after = "2026-10-19 09:01:01 INF after rotation"
	b.WriteString(after + "\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	require.Eventually(t, func() bool { return seen(after) }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestFollow_MissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "missing.log"), time.Millisecond, func(Line) {})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	for _, text := range []string{
		"2026-10-19 09:00:03 ERR boom",
		"2026-10-19 09:00:03 WRN careful",
		"2026-10-19 09:00:03 INF fine",
		"2026-10-19 09:00:03 DBG detail",
		"plain",
	} {
		assert.Contains(t, Render(ParseLine(1, text)), text)
	}
}
