// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"openbook/internal/platform/config"
	"openbook/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	HTTP *http.Client // optional; adapters build their own when nil
}

// Logger returns d.Log tagged with component; the zero Deps yields a disabled logger
func (d Deps) Logger(component string) *logger.Logger {
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
