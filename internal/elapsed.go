package internal

import (
	"fmt"
	"time"

	"github.com/ezrec/marie/translate"
)

// FormatElapsed formats an execution time in the largest of μs, ms or s
// that keeps the integer part below 1000.
func FormatElapsed(elapsed time.Duration) string {
	us := elapsed.Microseconds()

	switch {
	case us < 1000:
		return translate.From("Time: %dμs", us)
	case us < 1000000:
		return translate.From("Time: %d.%sms", us/1000, fmt.Sprintf("%03d", us%1000))
	default:
		return translate.From("Time: %s.%ss", fmt.Sprintf("%d", us/1000000), fmt.Sprintf("%06d", us%1000000))
	}
}

// FormatTicks formats an instruction count with locale digit grouping.
func FormatTicks(ticks int) string {
	return translate.From("Instructions: %d", ticks)
}
