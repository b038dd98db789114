// Package ctlog provides leveled logging for the CT visualizer core.
package ctlog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// level sets log verbosity. The larger the value, the more verbose. Setting it
// to -1 disables logging completely. Level 1 covers load/build milestones,
// level 2 per-slice detail.
var level = int32(0)

// SetLevel sets log verbosity. The larger the value, the more verbose. Setting
// it to -1 disables logging completely. Thread safe.
func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

// Level returns the current log level. Thread safe.
func Level() int {
	return int(atomic.LoadInt32(&level))
}

// Vprintf is shorthand for "if Level() >= l { log.Printf(...) }".
func Vprintf(l int, format string, args ...interface{}) {
	if Level() >= l {
		logrus.Printf(format, args...)
	}
}

// Warnf logs a warning regardless of verbosity, unless logging is disabled.
func Warnf(format string, args ...interface{}) {
	if Level() >= 0 {
		logrus.Warnf(format, args...)
	}
}
