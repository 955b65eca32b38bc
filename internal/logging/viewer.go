package logging

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Line is one parsed log file line.
type Line struct {
	Number int
	Text   string
	Level  string // TRC, DBG, INF, WRN, ERR, FTL, PNC or "" when unknown
	Time   time.Time
}

// Summary describes a log file.
type Summary struct {
	Path      string
	FileSize  int64
	Lines     int
	ByLevel   map[string]int
	Requests  int
	First     time.Time
	Last      time.Time
	ErrorRate float64
}

var levels = map[string]bool{
	"TRC": true, "DBG": true, "INF": true, "WRN": true,
	"ERR": true, "FTL": true, "PNC": true,
}

// ParseLine extracts the timestamp and level written by the file writers.
func ParseLine(number int, text string) Line {
	l := Line{Number: number, Text: text}
	if len(text) < len(TimeFormat) {
		return l
	}
	ts, err := time.ParseInLocation(TimeFormat, text[:len(TimeFormat)], time.Local)
	if err != nil {
		return l
	}
	l.Time = ts
	rest := strings.Fields(text[len(TimeFormat):])
	if len(rest) > 0 && levels[rest[0]] {
		l.Level = rest[0]
	}
	return l
}

func scanFile(path string, fn func(Line)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		fn(ParseLine(n, sc.Text()))
	}
	return sc.Err()
}

// Tail returns the last n non-empty lines of the file.
func Tail(path string, n int) ([]Line, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]Line, 0, n)
	err := scanFile(path, func(l Line) {
		if strings.TrimSpace(l.Text) == "" {
			return
		}
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, l)
	})
	if err != nil {
		return nil, err
	}
	return ring, nil
}

// Filter returns every line containing term.
func Filter(path, term string, caseSensitive bool) ([]Line, error) {
	if !caseSensitive {
		term = strings.ToLower(term)
	}
	var out []Line
	err := scanFile(path, func(l Line) {
		text := l.Text
		if !caseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, term) {
			out = append(out, l)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stats counts lines per level and access log entries.
func Stats(path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	s := &Summary{Path: path, FileSize: info.Size(), ByLevel: make(map[string]int)}
	err = scanFile(path, func(l Line) {
		s.Lines++
		if l.Level != "" {
			s.ByLevel[l.Level]++
		}
		if strings.Contains(l.Text, AccessLogMessage) {
			s.Requests++
		}
		if !l.Time.IsZero() {
			if s.First.IsZero() {
				s.First = l.Time
			}
			s.Last = l.Time
		}
	})
	if err != nil {
		return nil, err
	}
	if s.Lines > 0 {
		s.ErrorRate = float64(s.ByLevel["ERR"]+s.ByLevel["FTL"]+s.ByLevel["PNC"]) / float64(s.Lines) * 100
	}
	return s, nil
}

// Follow streams lines appended to the file until ctx is done. When the path
// is replaced by a new file, or truncated, it is reopened from the start.
func Follow(ctx context.Context, path string, poll time.Duration, fn func(Line)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	r := bufio.NewReader(f)
	var partial strings.Builder
	n := 0
	for {
		chunk, err := r.ReadString('\n')
		offset += int64(len(chunk))
		partial.WriteString(chunk)
		if err == nil {
			n++
			fn(ParseLine(n, strings.TrimRight(partial.String(), "\r\n")))
			partial.Reset()
			continue
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("read log file: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		current, statErr := f.Stat()
		if statErr == nil && os.SameFile(current, info) && info.Size() >= offset {
			continue
		}
		// Rotated or truncated.
		_ = f.Close()
		if f, err = os.Open(path); err != nil {
			return fmt.Errorf("reopen log file: %w", err)
		}
		offset = 0
		partial.Reset()
		r.Reset(f)
	}
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
)

// Render colours a line by level.
func Render(l Line) string {
	switch l.Level {
	case "ERR", "FTL", "PNC":
		return errorStyle.Render(l.Text)
	case "WRN":
		return warnStyle.Render(l.Text)
	case "INF":
		return infoStyle.Render(l.Text)
	case "DBG", "TRC":
		return debugStyle.Render(l.Text)
	default:
		return l.Text
	}
}

// RenderSummary formats a Summary for the terminal.
func RenderSummary(s *Summary) string {
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label)), value)
	}
	fmt.Fprintf(&b, "Log statistics for %s\n", s.Path)
	row("File size:", fmt.Sprintf("%d bytes", s.FileSize))
	row("Lines:", fmt.Sprintf("%d", s.Lines))
	for _, lvl := range []string{"DBG", "INF", "WRN", "ERR"} {
		row(lvl+":", fmt.Sprintf("%d", s.ByLevel[lvl]))
	}
	row("Requests:", fmt.Sprintf("%d", s.Requests))
	if s.Lines > 0 {
		row("Error rate:", fmt.Sprintf("%.2f%%", s.ErrorRate))
	}
	if !s.First.IsZero() {
		row("First:", s.First.Format(TimeFormat))
		row("Last:", s.Last.Format(TimeFormat))
	}
	return b.String()
}
