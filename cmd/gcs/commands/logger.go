package commands

import (
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// apexLogger routes client logs to apex/log.
type apexLogger struct {
	logger log.Interface
}

var _ gcs.Logger = (*apexLogger)(nil)

// newLogger writes warnings and errors to w, and debug output too when
// verbose is set.
func newLogger(w io.Writer, verbose bool) *apexLogger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return &apexLogger{logger: &log.Logger{Handler: cli.New(w), Level: level}}
}

func (l *apexLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(log.Fields(fields)).Debug(msg)
}

func (l *apexLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(log.Fields(fields)).Info(msg)
}

func (l *apexLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(log.Fields(fields)).Warn(msg)
}

func (l *apexLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(log.Fields(fields)).Error(msg)
}
