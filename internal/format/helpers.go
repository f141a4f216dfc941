package format

import "fmt"

// FmtMillis formats a millisecond latency as "340ms", or "1.2s" above a second.
func FmtMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", ms/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}

// FmtPercent formats a 0..1 rate as a percentage, e.g. 0.025 -> "2.50%".
func FmtPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FmtThroughput formats a requests-per-second value, e.g. "210.4 req/s".
func FmtThroughput(rps float64) string {
	return fmt.Sprintf("%.1f req/s", rps)
}

// FmtCount formats a request count with K/M suffix for readability.
func FmtCount(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%d", n)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
