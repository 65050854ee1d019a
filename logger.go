package kousei

import (
	"github.com/rs/zerolog"
)

// Logger is used by services created without WithLogger.
// It discards everything until the caller replaces it, e.g.
//
//	kousei.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
var Logger = zerolog.Nop()

func componentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
