package view

import "encoding/json"

type ScanType string

const (
	ScanTypeAI         ScanType = "ai"
	ScanTypePlagiarism ScanType = "plagiarism"
	ScanTypeAll        ScanType = "all"
)

func ValidScanType(t ScanType) bool {
	switch t {
	case ScanTypeAI, ScanTypePlagiarism, ScanTypeAll:
		return true
	}
	return false
}

// ScanResult is the payload returned by the analysis API for one submitted
// document. It is persisted verbatim, so the raw bytes are carried next to the
// decoded struct in ScanEnvelope.
type ScanResult struct {
	Properties      *ScanProperties    `json:"properties,omitempty"`
	AI              *AIResult          `json:"ai,omitempty"`
	Plagiarism      *PlagiarismResult  `json:"plagiarism,omitempty"`
	Readability     *ReadabilityResult `json:"readability,omitempty"`
	GrammarSpelling *GrammarSpelling   `json:"grammarSpelling,omitempty"`
	Credits         *Credits           `json:"credits,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// ScanEnvelope holds a decoded scan result together with the exact bytes
// received from the API.
type ScanEnvelope struct {
	Result ScanResult
	Raw    json.RawMessage
}

type ScanProperties struct {
	Id         string `json:"id"`
	Title      string `json:"title,omitempty"`
	PublicLink string `json:"public_link,omitempty"`
	PrivateID  string `json:"privateID,omitempty"`
}

type AIResult struct {
	Classification map[string]float64 `json:"classification,omitempty"`
	Confidence     map[string]float64 `json:"confidence,omitempty"`
	Blocks         []AIBlock          `json:"blocks,omitempty"`
}

type AIBlock struct {
	Text   string        `json:"text"`
	Result AIBlockResult `json:"result"`
}

type AIBlockResult struct {
	Fake float64 `json:"fake"`
	Real float64 `json:"real"`
}

type PlagiarismResult struct {
	Score          float64           `json:"score"`
	TotalTextScore float64           `json:"totalTextScore,omitempty"`
	Matches        []PlagiarismMatch `json:"matches,omitempty"`
}

type PlagiarismMatch struct {
	URL     string  `json:"url"`
	Website string  `json:"website,omitempty"`
	Score   float64 `json:"score"`
}

type ReadabilityResult struct {
	TextStats   *TextStats         `json:"textStats,omitempty"`
	Readability *ReadabilityScores `json:"readability,omitempty"`
	Sentences   []Sentence         `json:"sentences,omitempty"`
}

type TextStats struct {
	UniqueWordCount                int     `json:"uniqueWordCount"`
	SentenceCount                  int     `json:"sentenceCount"`
	SyllableCount                  int     `json:"syllableCount"`
	TotalSyllables                 int     `json:"totalSyllables"`
	AverageSyllablesPerWord        float64 `json:"averageSyllablesPerWord"`
	WordsWithThreeSyllables        int     `json:"wordsWithThreeSyllables"`
	PercentWordsWithThreeSyllables float64 `json:"percentWordsWithThreeSyllables"`
	AverageSpeakingTime            float64 `json:"averageSpeakingTime"`
	AverageReadingTime             float64 `json:"averageReadingTime"`
}

type ReadabilityScores struct {
	FleschReadingEase float64 `json:"fleschReadingEase"`
	FleschGradeLevel  float64 `json:"fleschGradeLevel"`
	GunningFoxIndex   float64 `json:"gunningFoxIndex"`
	SmogIndex         float64 `json:"smogIndex"`
	ColemanLiauIndex  float64 `json:"colemanLiauIndex"`
}

type Sentence struct {
	Text                string   `json:"text,omitempty"`
	IsHard              bool     `json:"isHard"`
	IsVeryHard          bool     `json:"isVeryHard"`
	WordsOver13Chars    []string `json:"wordsOver13Chars,omitempty"`
	WordsOver4Syllables []string `json:"wordsOver4Syllables,omitempty"`
}

type GrammarSpelling struct {
	Error  string          `json:"error,omitempty"`
	Issues json.RawMessage `json:"issues,omitempty"`
}

type Credits struct {
	Used                float64 `json:"used"`
	BaseCredits         float64 `json:"base_credits"`
	SubscriptionCredits float64 `json:"subscription_credits"`
}
