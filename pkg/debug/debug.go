// Package debug builds the process logger: a zerolog console writer with a
// millisecond timestamp and a short package:file:line caller.
package debug

import (
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

type Options struct {
	Level zerolog.Level
	// Color enables ANSI styling in the console writer and the caller field.
	Color bool
	// JSON writes plain zerolog JSON lines instead of the console format.
	JSON bool
}

// NewLogger writes to w. Stdout belongs to the JSON-RPC channel when serving,
// so callers pass os.Stderr.
func NewLogger(w io.Writer, opts Options) zerolog.Logger {
	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !opts.Color,
			TimeFormat: TimeFormat,
		}
	}

	return zerolog.New(out).
		Level(opts.Level).
		Hook(TimeHook{}).
		Hook(CallerHook{WithColor: opts.Color && !opts.JSON})
}

type TimeHook struct {
	Format string
}

func (me TimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := me.Format
	if format == "" {
		format = TimeFormat
	}
	e.Str(zerolog.TimestampFieldName, time.Now().Format(format))
}

type CallerHook struct {
	WithColor bool
}

// callerSkip covers Hook.Run, Event.msg and Event.Msg.
const callerSkip = 3

// skipFrames reads the count set by Event.CallerSkipFrame, which zerolog
// keeps unexported.
func skipFrames(e *zerolog.Event) int {
	field := reflect.ValueOf(e).Elem().FieldByName("skipFrame")
	if !field.IsValid() || field.Kind() != reflect.Int {
		return 0
	}
	return int(field.Int())
}

func (me CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(callerSkip + skipFrames(e))
	if !ok {
		return
	}

	pkg := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		pkg = PackageOf(fn.Name())
	}

	e.Str(zerolog.CallerFieldName, FormatCaller(pkg, file, line, me.WithColor))
}

// PackageOf trims the function and receiver off a runtime function name:
//
//	github.com/a/b/pkg/rpc.(*Server).Serve -> github.com/a/b/pkg/rpc
func PackageOf(funcName string) string {
	lastSlash := strings.LastIndexByte(funcName, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}
	if dot := strings.IndexByte(funcName[lastSlash:], '.'); dot >= 0 {
		return funcName[:lastSlash+dot]
	}
	return funcName
}

func FormatCaller(pkg, path string, line int, colorize bool) string {
	name := filepath.Base(path)
	if !colorize {
		return fmt.Sprintf("%s:%s:%d", pkg, name, line)
	}

	sep := color.New(color.Faint).Sprint(":")
	return pkg + sep + color.New(color.Bold).Sprint(name) + sep + color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
}
