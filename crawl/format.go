package crawl

import "fmt"

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSummary formats a run result as a single status line.
func FormatSummary(r *Result) string {
	return fmt.Sprintf("%d pages, %d assets, %d failed (%s)", r.Pages, r.Assets, r.Failed, FormatBytes(r.Bytes))
}
