package cron

import (
	"fmt"
	"os"
	"strings"
)

// appendLines appends each line plus a newline to path, creating it if needed.
func appendLines(path string, lines ...string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("write log file: %w", err)
	}

	return f.Close()
}
