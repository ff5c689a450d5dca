package cli

import "fmt"

// formatSeconds renders a second count as HH:MM:SS.
func formatSeconds(s int64) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
