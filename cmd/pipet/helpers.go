package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseParams converts repeated "name=value" flag values into a parameter
// map. Values parse as bool, int, or float when they look like one, and stay
// strings otherwise.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed parameter %q (expected name=value)", pair)
		}
		params[name] = coerceValue(strings.TrimSpace(raw))
	}
	return params, nil
}

func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
