package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"

	"github.com/xy-planning-network/waypoint"
)

const knownFrames = 3

var waypointPathRegex = regexp.MustCompile("waypoint.*$")

// colorizers maps each LogLevel to the color its lines print in.
var colorizers = map[LogLevel]func(string, ...any) string{
	LogLevelDebug: color.WhiteString,
	LogLevelInfo:  color.BlueString,
	LogLevelWarn:  color.YellowString,
	LogLevelError: color.RedString,
	LogLevelFatal: color.MagentaString,
}

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	return map[LogLevel]string{
		LogLevelDebug: "[DEBUG]",
		LogLevelInfo:  "[INFO]",
		LogLevelWarn:  "[WARN]",
		LogLevelError: "[ERROR]",
		LogLevelFatal: "[FATAL]",
		LogLevelUnk:   "[UNK]",
	}[ll]
}

// WaypointLogger implements Logger using log.
type WaypointLogger struct {
	skip int
	env  waypoint.Environment
	l    *log.Logger
	ll   LogLevel
}

// New constructs a WaypointLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The environment comes from ENVIRONMENT, defaulting to DEVELOPMENT
// when unset or invalid. The log level comes from LOG_LEVEL, defaulting
// to DEBUG in DEVELOPMENT and INFO everywhere else. Lines are colored
// per level outside PRODUCTION and printed plain within it.
func New(opts ...LoggerOptFn) Logger {
	env := waypoint.Environment(os.Getenv("ENVIRONMENT"))
	if env.Valid() != nil {
		env = waypoint.Development
	}

	l := &WaypointLogger{
		env: env,
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  defaultLevel(env),
	}
	for _, opt := range opts {
		opt(l)
	}

	if sentryDsn := os.Getenv("SENTRY_DSN"); sentryDsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, sentryDsn)
	}

	return l
}

// defaultLevel resolves the starting log level for an environment,
// honoring LOG_LEVEL when it holds a known level name.
func defaultLevel(env waypoint.Environment) LogLevel {
	if ll := NewLogLevel(os.Getenv("LOG_LEVEL")); ll != LogLevelUnk {
		return ll
	}

	if env.IsDevelopment() {
		return LogLevelDebug
	}

	return LogLevelInfo
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *WaypointLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *WaypointLogger) Debug(msg string, ctx *LogContext) { l.emit(LogLevelDebug, msg, ctx) }

// Error writes an error log.
func (l *WaypointLogger) Error(msg string, ctx *LogContext) { l.emit(LogLevelError, msg, ctx) }

// Fatal writes a fatal log.
func (l *WaypointLogger) Fatal(msg string, ctx *LogContext) { l.emit(LogLevelFatal, msg, ctx) }

// Info writes an info log.
func (l *WaypointLogger) Info(msg string, ctx *LogContext) { l.emit(LogLevelInfo, msg, ctx) }

// Warn writes a warning log.
func (l *WaypointLogger) Warn(msg string, ctx *LogContext) { l.emit(LogLevelWarn, msg, ctx) }

// LogLevel returns the LogLevel set for the WaypointLogger.
func (l *WaypointLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *WaypointLogger) Skip() int { return l.skip }

// emit prints the log message when level clears the configured gate,
// annotating it with the call site, the subject of the active session's
// claims, and any context if available.
func (l *WaypointLogger) emit(level LogLevel, msg string, ctx *LogContext) {
	if l.ll > level {
		return
	}

	msg = l.colorizer(level)("%s %s '%s'%s", level, l.callSite(ctx), msg, identity(ctx))
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// callSite resolves the file:line a log message points at.
//
// A non-empty LogContext.Caller takes precedence over the stack,
// so goroutines can attribute their logs to the code that spawned them.
func (l *WaypointLogger) callSite(ctx *LogContext) string {
	if ctx != nil && ctx.Caller != "" {
		return ctx.Caller
	}

	// NOTE: skip the number of frames the WaypointLogger has
	// and however many the WaypointLogger is configured with
	_, file, line, _ := runtime.Caller(knownFrames + l.skip)

	toPrint := immediateFilepath(file)
	if match := waypointPathRegex.Find([]byte(file)); match != nil {
		toPrint = string(match)
	}

	return fmt.Sprintf(callerTmpl, toPrint, line)
}

// colorizer picks how a level's line renders.
//
// PRODUCTION prints plain so log aggregators are not fed ANSI escapes.
func (l *WaypointLogger) colorizer(level LogLevel) func(string, ...any) string {
	if l.env.IsProduction() {
		return fmt.Sprintf
	}

	if c, ok := colorizers[level]; ok {
		return c
	}

	return fmt.Sprintf
}

// identity renders the subject of the session active during the logging
// event, or nothing when the event happened outside a session.
func identity(ctx *LogContext) string {
	if ctx == nil {
		return ""
	}

	sub, ok := ctx.Claims.String("sub")
	if !ok {
		return ""
	}

	return " sub:" + sub
}

// immediateFilepath prints the file and the directory it is in
// e.g.,:
// /home/dlk/my-project/main.go => my-project/main.go
// /home/dlk/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(file string) string {
	fullPath, file := path.Split(file)
	return path.Base(fullPath) + string(os.PathSeparator) + file
}
