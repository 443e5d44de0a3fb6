package registry

import (
	"github.com/rs/zerolog"
)

var _ EventSink = &LogSink{}

// LogSink is an EventSink that logs every lifecycle transition at debug
// level through an injected zerolog logger.
type LogSink struct {
	logger *zerolog.Logger
}

func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) EntityCreated(e Entity) {
	s.logger.Debug().Uint64("entity", uint64(e.ID())).Msg("entity created")
}

func (s *LogSink) EntityDestroyed(e Entity) {
	s.logger.Debug().Uint64("entity", uint64(e.ID())).Msg("entity destroyed")
}

func (s *LogSink) ComponentAdded(e Entity, k Kind, value any) {
	s.logger.Debug().
		Uint64("entity", uint64(e.ID())).
		Str("component", k.Name()).
		Interface("value", value).
		Msg("component added")
}

func (s *LogSink) ComponentRemoved(e Entity, k Kind, value any) {
	s.logger.Debug().
		Uint64("entity", uint64(e.ID())).
		Str("component", k.Name()).
		Interface("value", value).
		Msg("component removed")
}

func (s *LogSink) TagAdded(e Entity, k Kind) {
	s.logger.Debug().Uint64("entity", uint64(e.ID())).Str("tag", k.Name()).Msg("tag added")
}

func (s *LogSink) TagRemoved(e Entity, k Kind) {
	s.logger.Debug().Uint64("entity", uint64(e.ID())).Str("tag", k.Name()).Msg("tag removed")
}
