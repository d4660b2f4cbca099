package outwriter

import (
	"os"

	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on the terminal width. A positive override takes precedence over detection.
func GetMaxTablePathWidth(override int) int {
	termWidth := override

	if termWidth <= 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Function + Line + Length + CCN + Label with borders/padding
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// truncatePath shortens path to at most maxWidth characters, keeping the tail.
func truncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) <= maxWidth || maxWidth <= 3 {
		return path
	}
	return "..." + string(runes[len(runes)-(maxWidth-3):])
}
