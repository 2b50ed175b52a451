// Package log is the debug log shared by the CLI and the dashboard.
package log

import (
	stdlog "log"
	"os"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	debugEnabled bool
	logFile      *os.File
)

// Setup routes the standard logger to the debug log file when debug is set.
func Setup(debug bool) error {
	debugEnabled = debug
	if !debug || logFile != nil {
		return nil
	}
	logPath, err := Path()
	if err != nil {
		return err
	}
	logFile, err = tea.LogToFile(logPath, "stockroom")
	return err
}

func Close() error {
	if logFile == nil {
		return nil
	}
	defer func() { logFile = nil }()
	return logFile.Close()
}

func DebugEnabled() bool {
	return debugEnabled
}

// Printf logs a DEBUG line. It is a no-op unless debug logging is enabled.
func Printf(format string, args ...any) {
	if debugEnabled {
		stdlog.Printf("DEBUG: "+format, args...)
	}
}

// Path returns the location of the debug log file.
func Path() (string, error) {
	return xdg.StateFile("stockroom/debug.log")
}
