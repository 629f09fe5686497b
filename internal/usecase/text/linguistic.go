package text

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const (
	negationWindow = 2

	engagementWords = 50.0
	qualityWords    = 50.0

	coherentMinWords = 5.0
	coherentMaxWords = 25.0
)

// tokenize lowercases and splits text into words, keeping apostrophes
func tokenize(s string) []string {
	s = strings.ToLower(strings.ReplaceAll(s, "’", "'"))
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, "'")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// sentences splits on terminal punctuation and drops empty pieces
func sentences(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// polarity sums word sentiment, flipping words preceded by a negation
func polarity(tokens []string) (sum float64, hits int) {
	for i, w := range tokens {
		var p float64
		switch {
		case positiveWords[w]:
			p = 1
		case negativeWords[w]:
			p = -1
		default:
			continue
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negationWords[tokens[j]] {
				p = -p
				break
			}
		}
		sum += p
		hits++
	}
	return sum, hits
}

// regularPast reports an "-ed" verb form. Sentiment words such as "stressed"
// or "tired" are read as states, not as past tense.
func regularPast(w string) bool {
	if positiveWords[w] || negativeWords[w] {
		return false
	}
	return len(w) > 4 && strings.HasSuffix(w, "ed")
}

// computeLinguistic derives the linguistic feature set and transcript metadata
func computeLinguistic(transcript string) (entities.LinguisticFeatures, entities.TextMetadata) {
	tokens := tokenize(transcript)
	sents := sentences(transcript)

	meta := entities.TextMetadata{TranscriptLength: utf8.RuneCountInString(transcript)}
	if len(sents) > 0 {
		meta.AverageSentenceLength = float64(len(tokens)) / float64(len(sents))
	}

	var l entities.LinguisticFeatures
	if len(tokens) == 0 {
		return l, meta
	}
	wc := float64(len(tokens))

	var pos, neg, first, negations, absolutes, hedges, past, present, future int
	unique := make(map[string]bool, len(tokens))
	for _, w := range tokens {
		unique[w] = true
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
		if firstPersonWords[w] {
			first++
		}
		if negationWords[w] {
			negations++
		}
		if absolutistWords[w] {
			absolutes++
		}
		if hedgeWords[w] {
			hedges++
		}
		switch {
		case pastMarkers[w] || regularPast(w):
			past++
		case futureMarkers[w]:
			future++
		case presentMarkers[w]:
			present++
		}
	}

	sum, hits := polarity(tokens)
	if hits > 0 {
		l.SentimentScore = sum / float64(hits)
	}
	l.SentimentIntensity = float64(hits) / wc
	l.PositiveWordRatio = float64(pos) / wc
	l.NegativeWordRatio = float64(neg) / wc
	l.FirstPersonRatio = float64(first) / wc

	if tensed := past + present + future; tensed > 0 {
		l.PastTenseRatio = float64(past) / float64(tensed)
		l.FutureTenseRatio = float64(future) / float64(tensed)
	}

	l.NegationRatio = float64(negations) / wc
	l.AbsolutistCount = float64(absolutes)
	l.AbsolutistRatio = float64(absolutes) / wc
	l.LexicalDiversity = float64(len(unique)) / wc
	l.WordCount = wc

	l.Engagement = math.Min(1, wc/engagementWords)
	l.Expressivity = math.Min(1, l.SentimentIntensity*5)
	l.Coherence = coherence(meta.AverageSentenceLength)
	l.Certainty = math.Max(0, 1-float64(hedges)/wc*10)

	meta.Quality = math.Min(1, wc/qualityWords)
	return l, meta
}

// coherence is 1 for sentence lengths in the conversational range and
// decays outside it
func coherence(avgSentenceLength float64) float64 {
	switch {
	case avgSentenceLength <= 0:
		return 0
	case avgSentenceLength < coherentMinWords:
		return avgSentenceLength / coherentMinWords
	case avgSentenceLength > coherentMaxWords:
		return coherentMaxWords / avgSentenceLength
	}
	return 1
}
