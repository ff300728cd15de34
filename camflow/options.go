package camflow

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"go.uber.org/zap"
)

// Logger is the subset of the datatrails sugared logger used here.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type Options struct {
	log Logger
}

type Option func(*Options)

// WithLogger sets the logger metadata conflicts are reported to.
func WithLogger(log Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

func defaultLogger() Logger {
	if logger.Sugar != nil {
		return logger.Sugar
	}
	return zap.NewNop().Sugar()
}
