package modkit

import (
	"time"

	"contactguard/internal/platform/config"
	"contactguard/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// Now is the wall clock, nil means time.Now
	Now func() time.Time
}

// Logger returns Log or the named root logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}

// Clock returns Now or time.Now when unset
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}
