package logging

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	AppLogFile   = "app.log"
	ErrorLogFile = "error.log"

	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 30

	// TimeFormat is shared by every writer so the viewer can parse file lines.
	TimeFormat = "2006-01-02 15:04:05"

	// AccessLogMessage is the message of every HTTP access log entry.
	AccessLogMessage = "HTTP request"
)

// Options configures Apply. Zero sizes fall back to the defaults.
type Options struct {
	Level      string
	Debug      bool
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console receives colourised output; defaults to os.Stdout.
	Console io.Writer
}

// Apply sets the global level and installs the console writer plus two
// rotating files under opts.Dir: app.log with every enabled level and
// error.log with errors only. The returned closer flushes the files.
func Apply(opts Options) io.Closer {
	applyLevel(opts.Level, opts.Debug)

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	consoleOutput := zerolog.ConsoleWriter{Out: console, TimeFormat: TimeFormat}
	log.Logger = zerolog.New(consoleOutput).With().Timestamp().Logger()

	if opts.Dir == "" {
		return nopCloser{}
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", opts.Dir).Msg("Failed to prepare log directory; logging to console only")
		return nopCloser{}
	}

	appFile := rotatingFile(filepath.Join(opts.Dir, AppLogFile), opts)
	errFile := rotatingFile(filepath.Join(opts.Dir, ErrorLogFile), opts)

	multi := zerolog.MultiLevelWriter(
		consoleOutput,
		fileWriter(appFile),
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: fileWriter(errFile)},
			Level:  zerolog.ErrorLevel,
		},
	)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	return closers{appFile, errFile}
}

func applyLevel(level string, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func rotatingFile(path string, opts Options) *lumberjack.Logger {
	maxSize, maxBackups, maxAge := DefaultMaxSizeMB, DefaultMaxBackups, DefaultMaxAgeDays
	if opts.MaxSizeMB > 0 {
		maxSize = opts.MaxSizeMB
	}
	if opts.MaxBackups > 0 {
		maxBackups = opts.MaxBackups
	}
	if opts.MaxAgeDays > 0 {
		maxAge = opts.MaxAgeDays
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}
}

func fileWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: TimeFormat, NoColor: true}
}

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
