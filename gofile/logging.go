package gofile

import (
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"
)

// reqLogger routes req's internal messages to slog.
type reqLogger struct {
	logger *slog.Logger
}

//nolint:ireturn // req.SetLogger takes the interface; nil disables req logging.
func newReqLogger(logger *slog.Logger) req.Logger {
	if logger == nil {
		return nil
	}
	return &reqLogger{logger: logger.With("component", "http")}
}

func (l *reqLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *reqLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *reqLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
