package sl

import (
	"log/slog"
	"strings"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}

// Secret logs only the first few characters of a sensitive value.
func Secret(key, value string) slog.Attr {
	if len(value) > 5 {
		value = value[:5] + strings.Repeat("*", 5)
	} else if value != "" {
		value = strings.Repeat("*", len(value))
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(value),
	}
}
