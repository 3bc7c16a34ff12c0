package ocr

import (
	"context"
	"image"
	"sort"
	"strings"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// CenterY returns the vertical center of b.
func (b Bounds) CenterY() float64 {
	return float64(b.Y1+b.Y2) / 2
}

// Line is one recognized line of text.
type Line struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Engine recognizes text in an image. Implementations block for the whole
// recognition and must be safe for concurrent use.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) ([]Line, error)
}

// FullText joins the text of every line whose confidence is above
// minConfidence, one line per row, and trims the result.
func FullText(lines []Line, minConfidence float64) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Confidence > minConfidence {
			parts = append(parts, l.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// TopToBottom returns a copy of lines sorted by vertical center. Lines on the
// same row keep their recognition order.
func TopToBottom(lines []Line) []Line {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bounds.CenterY() < sorted[j].Bounds.CenterY()
	})
	return sorted
}
