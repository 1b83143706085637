package display

import (
	"fmt"
	"time"
)

// FormatDuration returns a compact human-readable duration (e.g. "1m 42s",
// "3.4s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) - m*60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) - h*60
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatRate returns a frames-per-second label ("24.31 fps"; "n/a" when the
// rate is not defined).
func FormatRate(fps float64) string {
	if fps <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f fps", fps)
}

// FormatResolution returns "WxH".
func FormatResolution(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}
