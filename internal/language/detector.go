// Package language classifies input text as English or Bengali by script.
package language

import "github.com/hyperjump/cancerqa/internal/models"

// Bengali Unicode block bounds.
const (
	bengaliFirst rune = 0x0980
	bengaliLast  rune = 0x09FF
)

// IsBengaliRune reports whether r lies in the Bengali Unicode block.
func IsBengaliRune(r rune) bool {
	return r >= bengaliFirst && r <= bengaliLast
}

// Detect returns models.Bengali if any rune of text is in the Bengali block,
// and models.English otherwise. Empty or script-less input is English.
func Detect(text string) models.Language {
	for _, r := range text {
		if IsBengaliRune(r) {
			return models.Bengali
		}
	}
	return models.English
}

// Detector adapts Detect to an interface value for injection.
type Detector struct{}

// NewDetector returns the script-range detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect classifies text; see the package-level Detect.
func (d *Detector) Detect(text string) models.Language {
	return Detect(text)
}
