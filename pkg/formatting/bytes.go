// Package formatting parses and prints the human-facing values the service
// deals in: byte sizes from config and JSON payloads from model replies.
package formatting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Binary size prefixes. Index i scales by 1024^i.
var prefixes = []string{"", "K", "M", "G", "T", "P", "E"}

// FormatBytes renders n with the largest binary unit that keeps the value at
// or above one, e.g. "1.5 MB". Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	size := float64(n)
	i := 0
	for (size >= 1024 || size <= -1024) && i < len(prefixes)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return strconv.FormatInt(n, 10) + " B"
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + prefixes[i] + "B"
}

// ParseBytes reads sizes such as "50MB", "1.5 GiB", "512k", or "4096". Units
// are case-insensitive and always binary; a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty byte size")
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	scale, err := unitScale(strings.TrimSpace(s[end:]))
	if err != nil {
		return 0, err
	}
	return int64(value * float64(scale)), nil
}

func unitScale(unit string) (int64, error) {
	u := strings.ToUpper(unit)
	u = strings.TrimSuffix(u, "IB")
	u = strings.TrimSuffix(u, "B")

	for i, p := range prefixes {
		if u == p {
			return int64(1) << (10 * i), nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", unit)
}
