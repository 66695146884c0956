package analysis

import (
	"github.com/jonreiter/govader"
)

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

// AnalyzeWithVADER runs the VADER rule-based analyzer over text and maps
// the compound score to a coarse three-class label. Used as an independent
// cross-check on model output when assessing reliability; it plays no part
// in classification itself.
func AnalyzeWithVADER(text string) (float64, string) {
	plainText := MarkdownToText(text)

	sentiment := vaderAnalyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= vaderPositiveThreshold {
		label = "positive"
	} else if score <= vaderNegativeThreshold {
		label = "negative"
	} else {
		label = "neutral"
	}

	return score, label
}
