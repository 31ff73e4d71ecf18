package utils

import "fmt"

// ShortenString cuts s to l characters, appending "..." if it was longer.
// l == 0 disables shortening.
func ShortenString(s string, l int) string {
	if len(s) > l && l != 0 {
		return fmt.Sprintf("%s...", s[:l])
	}
	return s
}
