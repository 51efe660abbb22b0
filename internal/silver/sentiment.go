package silver

import (
	"math"
	"strings"

	"newslake/internal/store"
)

// Text shorter than this carries too little signal to score.
const minSentimentChars = 10

// sentimentLexicon assigns a polarity weight in [-1, 1] to opinionated
// words (English and Portuguese). The score of a text is the mean weight of
// its matched words, so a text with no matches stays at exactly 0.
var sentimentLexicon = map[string]float64{
	// English, positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "positive": 0.6,
	"success": 0.7, "successful": 0.8, "win": 0.7, "wins": 0.7,
	"growth": 0.5, "improve": 0.5, "improved": 0.5, "strong": 0.4,
	"best": 0.9, "record": 0.3, "boost": 0.5, "gain": 0.5, "gains": 0.5,
	"breakthrough": 0.8, "hope": 0.4, "recovery": 0.5, "safe": 0.4,
	"happy": 0.8, "celebrate": 0.7, "progress": 0.5, "innovative": 0.6,
	// English, negative
	"bad": -0.7, "worst": -1.0, "negative": -0.6, "crisis": -0.8,
	"fail": -0.7, "failure": -0.8, "fails": -0.7, "loss": -0.6,
	"losses": -0.6, "lose": -0.6, "weak": -0.4, "decline": -0.5,
	"drop": -0.4, "fall": -0.4, "crash": -0.8, "threat": -0.6,
	"war": -0.8, "death": -0.9, "dead": -0.8, "attack": -0.7,
	"fraud": -0.8, "scandal": -0.7, "fear": -0.6, "risk": -0.4,
	"problem": -0.5, "problems": -0.5, "severe": -0.6, "disaster": -0.9,
	// Portuguese, positive
	"bom": 0.7, "boa": 0.7, "otimo": 0.9, "ótimo": 0.9, "excelente": 1.0,
	"sucesso": 0.7, "vitoria": 0.7, "vitória": 0.7, "vence": 0.7,
	"crescimento": 0.5, "melhor": 0.6, "melhoria": 0.5, "forte": 0.4,
	"recorde": 0.3, "esperanca": 0.4, "esperança": 0.4, "recuperacao": 0.5,
	"recuperação": 0.5, "feliz": 0.8, "celebra": 0.6, "avanço": 0.5,
	// Portuguese, negative
	"mau": -0.7, "pior": -0.8, "crise": -0.8, "fracasso": -0.8,
	"derrota": -0.6, "perde": -0.6, "perdas": -0.6, "fraco": -0.4,
	"queda": -0.5, "ameaca": -0.6, "ameaça": -0.6, "guerra": -0.8,
	"morte": -0.9, "morto": -0.8, "ataque": -0.7, "fraude": -0.8,
	"escandalo": -0.7, "escândalo": -0.7, "medo": -0.6, "grave": -0.6,
	"problema": -0.5, "problemas": -0.5, "desastre": -0.9,
}

// Sentiment is the outcome of the polarity heuristic.
type Sentiment struct {
	Polarity float64
	Label    store.SentimentLabel
}

// AnalyzeSentiment scores cleaned text in [-1, 1] and labels it with the
// fixed thresholds: > 0.1 positive, < -0.1 negative, else neutral. Empty or
// near-empty input yields the neutral default rather than an error.
func AnalyzeSentiment(text string) Sentiment {
	neutral := Sentiment{Polarity: 0, Label: store.SentimentNeutral}
	if len(text) < minSentimentChars {
		return neutral
	}

	var sum float64
	var matched int
	for _, token := range tokenize(text) {
		if weight, ok := sentimentLexicon[token]; ok {
			sum += weight
			matched++
		}
	}
	if matched == 0 {
		return neutral
	}

	polarity := round4(sum / float64(matched))
	return Sentiment{Polarity: polarity, Label: LabelFor(polarity)}
}

// LabelFor maps a polarity score to its label.
func LabelFor(polarity float64) store.SentimentLabel {
	switch {
	case polarity > 0.1:
		return store.SentimentPositive
	case polarity < -0.1:
		return store.SentimentNegative
	default:
		return store.SentimentNeutral
	}
}

// tokenize lower-cases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
		(r >= 'à' && r <= 'ö') || (r >= 'ø' && r <= 'ÿ')
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
