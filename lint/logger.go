package lint

import (
	"strings"

	"github.com/rs/zerolog"
)

// Logger receives configuration and runtime messages of the lint engines.
var Logger = zerolog.Nop()

// stderrConsumer forwards the stderr of an external linter line by line.
type stderrConsumer struct {
	Prefix string
	Level  zerolog.Level
}

func newStderrConsumer(prefix string) *stderrConsumer {
	return &stderrConsumer{
		Prefix: prefix,
		Level:  zerolog.WarnLevel,
	}
}

func (l *stderrConsumer) Err(command, message string) {
	lines := strings.Split(message, "\n")
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			event := Logger.WithLevel(l.Level).
				Str("command", command).
				Str("type", "stderr")
			if l.Prefix != "" {
				event = event.Str("component", l.Prefix)
			}
			event.Msg(line)
		}
	}
}
