package reactive

import "time"

// ChangeEvent describes one committed mutation for logging.
type ChangeEvent struct {
	Collection string
	Op         string
	Size       int
	Batch      bool
	Duration   time.Duration
	Err        error
}

// ChangeLogger records committed mutations.
type ChangeLogger interface {
	LogChange(ChangeEvent)
}

// ChangeLoggerFunc adapts a function to ChangeLogger.
type ChangeLoggerFunc func(ChangeEvent)

// LogChange implements ChangeLogger.
func (f ChangeLoggerFunc) LogChange(event ChangeEvent) {
	if f != nil {
		f(event)
	}
}

type noopChangeLogger struct{}

func (noopChangeLogger) LogChange(ChangeEvent) {}

// WithChangeLogger attaches a change logger to the facade. The logger runs
// after the snapshot has been committed and fanned out.
func WithChangeLogger(logger ChangeLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.changeLogger = noopChangeLogger{}
			return
		}
		cfg.changeLogger = logger
	}
}
