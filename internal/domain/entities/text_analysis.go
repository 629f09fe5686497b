package entities

// RiskLevel classifies wellbeing risk signalled by the transcript
type RiskLevel string

const (
	RiskLevelNone     RiskLevel = "none"
	RiskLevelMild     RiskLevel = "mild"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelHigh     RiskLevel = "high"
)

// Valid reports whether the level is one of the known values
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLevelNone, RiskLevelMild, RiskLevelModerate, RiskLevelHigh:
		return true
	}
	return false
}

// LinguisticFeatures are transcript statistics used for fusion scoring only
type LinguisticFeatures struct {
	SentimentScore     float64 `json:"sentiment_score"`
	SentimentIntensity float64 `json:"sentiment_intensity"`
	PositiveWordRatio  float64 `json:"positive_word_ratio"`
	NegativeWordRatio  float64 `json:"negative_word_ratio"`
	FirstPersonRatio   float64 `json:"first_person_ratio"`
	PastTenseRatio     float64 `json:"past_tense_ratio"`
	FutureTenseRatio   float64 `json:"future_tense_ratio"`
	NegationRatio      float64 `json:"negation_ratio"`
	AbsolutistRatio    float64 `json:"absolutist_ratio"`
	AbsolutistCount    float64 `json:"absolutist_count"`
	LexicalDiversity   float64 `json:"lexical_diversity"`
	WordCount          float64 `json:"word_count"`
	Engagement         float64 `json:"engagement"`
	Expressivity       float64 `json:"expressivity"`
	Coherence          float64 `json:"coherence"`
	Certainty          float64 `json:"certainty"`
}

// TextMetadata describes the analysed transcript
type TextMetadata struct {
	TranscriptLength      int     `json:"transcript_length"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	Quality               float64 `json:"quality"`
}

// TextAnalysis is the structured understanding of a check-in transcript
type TextAnalysis struct {
	Summary         string    `json:"summary"`
	Themes          []string  `json:"themes"`
	Keywords        []string  `json:"keywords"`
	PositiveDrivers []string  `json:"positive_drivers"`
	NegativeDrivers []string  `json:"negative_drivers"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskReasons     []string  `json:"risk_reasons"`
	MoodRating      int       `json:"mood_rating"`
	TextScore       float64   `json:"text_score"`
	Uncertainty     float64   `json:"uncertainty"`

	// Neutral marks the fixed result returned for transcripts too short to
	// analyse. Its linguistic features are zero and carry no signal.
	Neutral bool `json:"neutral"`

	Linguistic LinguisticFeatures `json:"linguistic"`
	Metadata   TextMetadata       `json:"metadata"`
}

// Confidence is the complement of the analyzer's uncertainty
func (t *TextAnalysis) Confidence() float64 {
	return 1 - t.Uncertainty
}

// FeatureVector returns the linguistic features used for baseline comparison
func (t *TextAnalysis) FeatureVector() map[string]float64 {
	l := t.Linguistic
	return map[string]float64{
		"sentiment_score":     l.SentimentScore,
		"positive_word_ratio": l.PositiveWordRatio,
		"negative_word_ratio": l.NegativeWordRatio,
		"negation_ratio":      l.NegationRatio,
		"absolutist_ratio":    l.AbsolutistRatio,
		"engagement":          l.Engagement,
		"expressivity":        l.Expressivity,
		"coherence":           l.Coherence,
		"certainty":           l.Certainty,
	}
}

// CheckInContext is optional conversational context from prior check-ins
type CheckInContext struct {
	PriorThemes    []string  `json:"prior_themes,omitempty"`
	PriorScore     *float64  `json:"prior_score,omitempty"`
	PriorDirection Direction `json:"prior_direction,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
}
