// Package transcript computes which transcript rows are current for a
// playback position and formats positions for display.
package transcript

import (
	"fmt"

	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
)

// ActiveWindowSeconds is how long a segment stays active after its
// start timestamp. The window is fixed rather than derived from segment
// spacing, so unevenly spaced segments can overlap or leave gaps; that
// matches the product behavior and is not corrected here.
const ActiveWindowSeconds = 30

// IsActive reports whether a segment claims the given playback position.
func IsActive(seg repository.TranscriptSegment, position int) bool {
	return position >= seg.TimestampSeconds && position < seg.TimestampSeconds+ActiveWindowSeconds
}

// ActiveSegments returns every segment claiming the position, in
// transcript order.
func ActiveSegments(segments []repository.TranscriptSegment, position int) []repository.TranscriptSegment {
	var active []repository.TranscriptSegment
	for _, seg := range segments {
		if IsActive(seg, position) {
			active = append(active, seg)
		}
	}
	return active
}

// FormatSeconds renders a position as zero-padded "MM:SS". Minutes keep
// growing past 99 for long recordings.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
