package detection

import (
	"strings"
	"unicode"

	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/ocr"
)

// Verdict is the outcome of a document detector. Side is only meaningful
// when Detected is true.
type Verdict struct {
	Detected bool
	Side     model.Side
}

// NotDetected is the negative verdict.
var NotDetected = Verdict{}

func detected(side model.Side) Verdict {
	return Verdict{Detected: true, Side: side}
}

// Text is the recognized text of one image prepared for keyword matching.
type Text struct {
	joined  string
	ordered string
	raw     string
}

// NewText prepares lines for the detectors.
func NewText(lines []ocr.Line) Text {
	return Text{
		joined:  joinNormalized(lines),
		ordered: joinNormalized(ocr.TopToBottom(lines)),
		raw:     joinRaw(lines),
	}
}

func joinNormalized(lines []ocr.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, normalize(l.Text))
	}
	return strings.Join(parts, " ")
}

func joinRaw(lines []ocr.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, " ")
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// Empty reports whether no text was recognized.
func (t Text) Empty() bool {
	return strings.TrimSpace(t.joined) == ""
}

func (t Text) contains(keyword string) bool {
	return strings.Contains(t.joined, keyword)
}

func (t Text) containsAny(keywords ...string) bool {
	for _, k := range keywords {
		if t.contains(k) {
			return true
		}
	}
	return false
}

// found returns the keywords present in the text, in the order given.
func (t Text) found(keywords []string) []string {
	var present []string
	for _, k := range keywords {
		if t.contains(k) {
			present = append(present, k)
		}
	}
	return present
}

// inReadingOrder reports whether keywords first appear top to bottom in the
// given order. Keywords missing from the text are ignored.
func (t Text) inReadingOrder(keywords []string) bool {
	last := -1
	for _, k := range keywords {
		idx := strings.Index(t.ordered, k)
		if idx < 0 {
			continue
		}
		if idx < last {
			return false
		}
		last = idx
	}
	return true
}
