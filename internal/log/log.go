// Package log provides the package-level logger used by elz4's streaming
// Reader and its cmd/elz4 CLI. Library callers that never touch either of
// those see no log output: the default is a no-op logger, matching the
// core decoder's own silence.
package log

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// Set installs l as the package-level logger. The CLI calls this once at
// startup; tests and library code are free to leave the default no-op in
// place.
func Set(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}

func Debugf(template string, args ...interface{}) { logger.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { logger.Infof(template, args...) }
func Errorf(template string, args ...interface{}) { logger.Errorf(template, args...) }
