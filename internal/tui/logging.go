package tui

import "github.com/stockroom-dev/stockroom/internal/log"

func (m *Model) logf(format string, args ...any) {
	if !log.DebugEnabled() {
		return
	}
	log.Printf(format, args...)
}
