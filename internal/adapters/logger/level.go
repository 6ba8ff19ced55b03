package logger_adapter

import (
	"log/slog"
	"strings"
)

// ParseLevel переводит строку из конфига в slog.Level.
// Неизвестное значение дает info и ok=false, чтобы вызывающий мог предупредить.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
