package envutil

import (
	"log/slog"
	"os"
	"strconv"
)

func Bool(envName string, defaultValue bool) bool {
	v, ok := os.LookupEnv(envName)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Failed to parse the env var as a boolean", "envName", envName, "value", v, "error", err)
		return defaultValue
	}
	return b
}

func String(envName, defaultValue string) string {
	v, ok := os.LookupEnv(envName)
	if !ok {
		return defaultValue
	}
	return v
}

func Int(envName string, defaultValue int) int {
	v, ok := os.LookupEnv(envName)
	if !ok {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Failed to parse the env var as an integer", "envName", envName, "value", v, "error", err)
		return defaultValue
	}
	return i
}
