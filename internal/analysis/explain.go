package analysis

import (
	"strings"

	"github.com/techtitanians/sentiboard/internal/models"
)

// Reliability bands on classifier confidence.
const (
	veryHighConfidenceThreshold = 0.75
	goodConfidenceThreshold     = 0.55
	moderateConfidenceThreshold = 0.40
)

// maxWordCount is the point past which classifier input gets truncated by
// the tokenizer, so anything beyond it never influenced the verdict.
const maxWordCount = 512

// maxLimitations caps how many caveats a single explanation carries.
const maxLimitations = 3

// Explanation qualifies a classification result for display: how much to
// trust it and which known failure modes the text triggers.
type Explanation struct {
	Sentiment   models.Sentiment `json:"sentiment"`
	Confidence  float64          `json:"confidence"`
	KeyPhrases  []string         `json:"key_phrases"`
	Reliability string           `json:"reliability"`
	Limitations []string         `json:"limitations"`
}

var sarcasmIndicators = []string{
	"oh great", "wonderful", "fantastic", "perfect", "just what i needed", "oh sure",
}

var mixedIndicators = []string{"but", "however", "although", "though", "except", "despite"}

var explainPositiveWords = []string{"good", "great", "love", "like", "amazing", "excellent"}

var explainNegativeWords = []string{"bad", "hate", "terrible", "awful", "horrible", "poor"}

var informalIndicators = []string{"lol", "omg", "wtf", "tbh", "imo", "ngl", "fr"}

// Explain builds the reliability assessment for one analyzed text. VADER
// runs as an independent rule-based cross-check; when it disagrees with
// the model on polarity direction that becomes a caveat too.
func Explain(text string, result models.AnalysisResult) Explanation {
	explanation := Explanation{
		Sentiment:   result.Sentiment,
		Confidence:  result.Confidence,
		KeyPhrases:  result.Keywords,
		Reliability: reliabilityBand(result.Confidence),
	}

	wordCount := len(strings.Fields(text))
	lowered := strings.ToLower(text)

	var limitations []string
	if wordCount > maxWordCount {
		limitations = append(limitations, "Text exceeds maximum length, analysis may be truncated")
	} else if wordCount < 5 {
		limitations = append(limitations, "Very short text, consider adding more context for better accuracy")
	}

	if result.Confidence < moderateConfidenceThreshold {
		limitations = append(limitations, "Very low confidence - result may be unreliable, manual review strongly recommended")
	} else if result.Confidence < goodConfidenceThreshold {
		switch {
		case wordCount < 10:
			limitations = append(limitations, "Moderate confidence due to short text length")
		case strings.ContainsAny(text, "!?"):
			limitations = append(limitations, "Moderate confidence - text contains complex punctuation or emphasis")
		default:
			limitations = append(limitations, "Moderate confidence - consider additional context if available")
		}
	}

	if containsAny(lowered, sarcasmIndicators) && result.Confidence < 0.8 {
		limitations = append(limitations, "Possible sarcasm detected - sentiment may be opposite of literal meaning")
	}

	if containsAnyWord(lowered, mixedIndicators) &&
		containsAny(lowered, explainPositiveWords) &&
		containsAny(lowered, explainNegativeWords) {
		limitations = append(limitations, "Mixed sentiment detected - text may contain both positive and negative aspects")
	}

	if containsAnyWord(lowered, informalIndicators) {
		limitations = append(limitations, "Informal language detected - sentiment interpretation may vary")
	}

	if strings.Contains(text, "?") && result.Sentiment != models.SentimentNeutral {
		limitations = append(limitations, "Text contains questions - sentiment may be less definitive")
	}

	if _, vaderLabel := AnalyzeWithVADER(text); disagreesWithVADER(result.Sentiment, vaderLabel) {
		limitations = append(limitations, "Rule-based cross-check disagrees with model polarity")
	}

	if len(limitations) > maxLimitations {
		limitations = limitations[:maxLimitations]
	}
	explanation.Limitations = limitations
	return explanation
}

func reliabilityBand(confidence float64) string {
	switch {
	case confidence >= veryHighConfidenceThreshold:
		return "Very High"
	case confidence >= goodConfidenceThreshold:
		return "Good"
	case confidence >= moderateConfidenceThreshold:
		return "Moderate"
	default:
		return "Low"
	}
}

func containsAny(lowered string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(lowered, needle) {
			return true
		}
	}
	return false
}

// containsAnyWord matches whole tokens only, so "fr" does not fire on
// "france".
func containsAnyWord(lowered string, needles []string) bool {
	fields := strings.Fields(lowered)
	for _, field := range fields {
		trimmed := strings.Trim(field, ".,!?;:'\"()")
		for _, needle := range needles {
			if trimmed == needle {
				return true
			}
		}
	}
	return false
}

func disagreesWithVADER(sentiment models.Sentiment, vaderLabel string) bool {
	switch vaderLabel {
	case "positive":
		return sentiment == models.SentimentNegative || sentiment == models.SentimentVeryNegative
	case "negative":
		return sentiment == models.SentimentPositive || sentiment == models.SentimentVeryPositive
	default:
		return false
	}
}
