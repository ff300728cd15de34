package compress

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
	"go.uber.org/zap"
)

// Logger is the subset of the datatrails sugared logger used here.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type Options struct {
	log      Logger
	order    numbering.VisitOrder
	ranker   numbering.Ranker
	classify provgraph.Classifier
}

type Option func(*Options)

func WithLogger(log Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// WithVisitOrder sets the order transpose BFS ranking is seeded from. It is
// ignored when WithRanker is also given.
func WithVisitOrder(order numbering.VisitOrder) Option {
	return func(o *Options) {
		o.order = order
	}
}

// WithRanker replaces the transpose BFS ranker.
func WithRanker(r numbering.Ranker) Option {
	return func(o *Options) {
		o.ranker = r
	}
}

// WithClassifier classifies edges with c instead of the cf:type attribute
// of each relation's metadata record.
func WithClassifier(c provgraph.Classifier) Option {
	return func(o *Options) {
		o.classify = c
	}
}

func defaultLogger() Logger {
	if logger.Sugar != nil {
		return logger.Sugar
	}
	return zap.NewNop().Sugar()
}
