package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

type Output interface {
	Section(icon, title string)
	Header(title string)
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	Detail(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Println(s string)
	Printf(format string, args ...interface{})
}

const (
	LevelSection = "section"
	LevelHeader  = "header"
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
	LevelDetail  = "detail"
	LevelDebug   = "debug"
)

var debugMode atomic.Bool

// SetDebug enables or disables Debug output process-wide.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

func DebugEnabled() bool {
	return debugMode.Load()
}

var levelPrefix = map[string]string{
	LevelInfo:    "  ",
	LevelSuccess: "  ✅ ",
	LevelWarning: "  ⚠️  ",
	LevelError:   "  ❌ ",
	LevelDetail:  "   ",
	LevelDebug:   "  🔍 [DEBUG] ",
}

func render(level, format string, args ...interface{}) string {
	return levelPrefix[level] + fmt.Sprintf(format, args...)
}

func section(icon, title string) string {
	return fmt.Sprintf("\n%s %s", icon, title)
}

func header(title string) string {
	return fmt.Sprintf("\n%s\n%s", title, strings.Repeat("=", len(title)))
}

type StreamingOutput struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewStreamingOutput writes to writer, or to stderr when writer is nil.
// Stdout is left for machine-readable results.
func NewStreamingOutput(writer io.Writer) *StreamingOutput {
	if writer == nil {
		writer = os.Stderr
	}
	return &StreamingOutput{writer: writer}
}

func (o *StreamingOutput) writeln(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.writer, s)
}

func (o *StreamingOutput) Section(icon, title string) { o.writeln(section(icon, title)) }
func (o *StreamingOutput) Header(title string)        { o.writeln(header(title)) }

func (o *StreamingOutput) Info(format string, args ...interface{}) {
	o.writeln(render(LevelInfo, format, args...))
}

func (o *StreamingOutput) Success(format string, args ...interface{}) {
	o.writeln(render(LevelSuccess, format, args...))
}

func (o *StreamingOutput) Warning(format string, args ...interface{}) {
	o.writeln(render(LevelWarning, format, args...))
}

func (o *StreamingOutput) Error(format string, args ...interface{}) {
	o.writeln(render(LevelError, format, args...))
}

func (o *StreamingOutput) Detail(format string, args ...interface{}) {
	o.writeln(render(LevelDetail, format, args...))
}

func (o *StreamingOutput) Debug(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	o.writeln(render(LevelDebug, format, args...))
}

func (o *StreamingOutput) Println(s string) { o.writeln(s) }

func (o *StreamingOutput) Printf(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, format, args...)
}

type OutputLine struct {
	Level   string
	Message string
}

type BufferedOutput struct {
	lines []OutputLine
	debug bool
	mu    sync.Mutex
}

func NewBufferedOutput() *BufferedOutput {
	return &BufferedOutput{lines: make([]OutputLine, 0)}
}

// WithDebug makes o record Debug lines regardless of SetDebug.
func (o *BufferedOutput) WithDebug(enabled bool) *BufferedOutput {
	o.debug = enabled
	return o
}

func (o *BufferedOutput) add(level, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, OutputLine{Level: level, Message: message})
}

func (o *BufferedOutput) Section(icon, title string) { o.add(LevelSection, section(icon, title)) }
func (o *BufferedOutput) Header(title string)        { o.add(LevelHeader, header(title)) }

func (o *BufferedOutput) Info(format string, args ...interface{}) {
	o.add(LevelInfo, render(LevelInfo, format, args...))
}

func (o *BufferedOutput) Success(format string, args ...interface{}) {
	o.add(LevelSuccess, render(LevelSuccess, format, args...))
}

func (o *BufferedOutput) Warning(format string, args ...interface{}) {
	o.add(LevelWarning, render(LevelWarning, format, args...))
}

func (o *BufferedOutput) Error(format string, args ...interface{}) {
	o.add(LevelError, render(LevelError, format, args...))
}

func (o *BufferedOutput) Detail(format string, args ...interface{}) {
	o.add(LevelDetail, render(LevelDetail, format, args...))
}

func (o *BufferedOutput) Debug(format string, args ...interface{}) {
	if !o.debug && !DebugEnabled() {
		return
	}
	o.add(LevelDebug, render(LevelDebug, format, args...))
}

func (o *BufferedOutput) Println(s string) { o.add(LevelInfo, s) }

func (o *BufferedOutput) Printf(format string, args ...interface{}) {
	o.add(LevelInfo, fmt.Sprintf(format, args...))
}

func (o *BufferedOutput) Flush(writer io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, line := range o.lines {
		fmt.Fprintln(writer, line.Message)
	}
}

// String joins all collected lines.
func (o *BufferedOutput) String() string {
	var b strings.Builder
	o.Flush(&b)
	return b.String()
}

func (o *BufferedOutput) Lines() []OutputLine {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]OutputLine{}, o.lines...)
}

// NoOpOutput discards everything.
type NoOpOutput struct{}

func NewNoOpOutput() *NoOpOutput {
	return &NoOpOutput{}
}

func (o *NoOpOutput) Section(icon, title string)                 {}
func (o *NoOpOutput) Header(title string)                        {}
func (o *NoOpOutput) Info(format string, args ...interface{})    {}
func (o *NoOpOutput) Success(format string, args ...interface{}) {}
func (o *NoOpOutput) Warning(format string, args ...interface{}) {}
func (o *NoOpOutput) Error(format string, args ...interface{})   {}
func (o *NoOpOutput) Detail(format string, args ...interface{})  {}
func (o *NoOpOutput) Debug(format string, args ...interface{})   {}
func (o *NoOpOutput) Println(s string)                           {}
func (o *NoOpOutput) Printf(format string, args ...interface{})  {}
