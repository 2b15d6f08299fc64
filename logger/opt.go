package logger

import (
	"log"

	"github.com/xy-planning-network/waypoint"
)

// A LoggerOptFn is a functional option configuring a WaypointLogger when constructing a new one.
type LoggerOptFn func(*WaypointLogger)

// WithEnv sets the environment WaypointLogger is operating in.
//
// An invalid Environment is ignored.
func WithEnv(env waypoint.Environment) func(*WaypointLogger) {
	return func(l *WaypointLogger) {
		if env.Valid() != nil {
			return
		}
		l.env = env
	}
}

// WithLevel sets the log level WaypointLogger uses.
func WithLevel(level LogLevel) func(*WaypointLogger) {
	return func(l *WaypointLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger WaypointLogger uses.
func WithLogger(log *log.Logger) func(*WaypointLogger) {
	return func(l *WaypointLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*WaypointLogger) {
	return func(l *WaypointLogger) {
		l.skip = skip
	}
}
