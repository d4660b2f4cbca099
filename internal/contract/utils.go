package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/cyclocsv/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // CriticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // HighColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // ModerateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // LowColor represents informational / low-priority signal.
)

// GetColorLabel returns a colored complexity label for console output (table).
func GetColorLabel(complexity int) string {
	text := schema.ComplexityLabel(complexity)

	switch text {
	case schema.CriticalValue:
		return CriticalColor.Sprint(text)
	case schema.HighValue:
		return HighColor.Sprint(text)
	case schema.ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// Patterns with glob characters (*, ?, [ ]) are matched with filepath.Match against
// the full path, every trailing sub-path and the base name. Patterns ending with '/'
// are treated as directory prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. Anything else is a substring match.
func ShouldIgnore(path string, excludes []string) bool {
	path = filepath.ToSlash(path)
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(filepath.ToSlash(ex), "**", "*")
			if matchAnySuffix(pat, path) {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) || strings.Contains(path, "/"+ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// matchAnySuffix tries the pattern against the path and each of its trailing sub-paths.
func matchAnySuffix(pattern, path string) bool {
	candidate := path
	for {
		if ok, err := filepath.Match(pattern, candidate); err == nil && ok {
			return true
		}
		idx := strings.Index(candidate, "/")
		if idx < 0 {
			return false
		}
		candidate = candidate[idx+1:]
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cyclocsv_runs.db"
	}
	return filepath.Join(homeDir, ".cyclocsv_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// IsWithin reports whether path equals root or lies underneath it.
// Both arguments must be absolute and clean.
func IsWithin(root, path string) bool {
	if path == root {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
