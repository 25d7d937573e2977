package mathutil

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// NaN sanitization is a development-time safety net. When enabled,
// operations that can produce non-finite components reset the result to
// the identity (or zero rotator) and log the value that was discarded.

var (
	nanCheck  atomic.Bool
	nanLogger atomic.Pointer[logrus.FieldLogger]
)

// SetNaNCheck turns NaN sanitization on or off. Off by default.
func SetNaNCheck(enabled bool) {
	nanCheck.Store(enabled)
}

func NaNCheckEnabled() bool {
	return nanCheck.Load()
}

// SetLogger sets where sanitization warnings go. nil restores the logrus
// standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		nanLogger.Store(nil)
		return
	}
	nanLogger.Store(&l)
}

func logger() logrus.FieldLogger {
	if l := nanLogger.Load(); l != nil {
		return *l
	}
	return logrus.StandardLogger()
}

func reportNaN(kind, value string) {
	logger().WithFields(logrus.Fields{
		"type":  kind,
		"value": value,
	}).Warn("non-finite rotation reset to identity")
}
