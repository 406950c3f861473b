package service

import (
	"fmt"

	"github.com/originality-tools/oriscan/view"
)

// strongAiBlockThreshold marks a text block as strongly AI-like.
const strongAiBlockThreshold = 0.75

type SentenceComplexity struct {
	TotalSentences    int `json:"totalSentences"`
	HardSentences     int `json:"hardSentences"`
	VeryHardSentences int `json:"veryHardSentences"`
}

func AnalyzeSentenceComplexity(result view.ScanResult) SentenceComplexity {
	var complexity SentenceComplexity
	if result.Readability == nil {
		return complexity
	}
	for _, sentence := range result.Readability.Sentences {
		complexity.TotalSentences++
		if sentence.IsHard {
			complexity.HardSentences++
		}
		if sentence.IsVeryHard {
			complexity.VeryHardSentences++
		}
	}
	return complexity
}

// Insights produces the short findings list shown on reports and the
// dashboard export page.
func Insights(result view.ScanResult) []string {
	var insights []string

	if ai := result.AI; ai != nil {
		insights = append(insights, "AI Detection:")
		if prob, ok := ai.Confidence["AI"]; ok {
			insights = append(insights, fmt.Sprintf("  - Overall AI Probability: %.1f%%", prob*100))
		}
		if len(ai.Blocks) > 0 {
			strongBlocks := 0
			for _, block := range ai.Blocks {
				if block.Result.Fake > strongAiBlockThreshold {
					strongBlocks++
				}
			}
			insights = append(insights, fmt.Sprintf("  - %d text blocks show strong AI characteristics", strongBlocks))
		}
	}

	if read := result.Readability; read != nil {
		insights = append(insights, "Readability Analysis:")
		if scores := read.Readability; scores != nil {
			insights = append(insights, fmt.Sprintf("  - Flesch Reading Ease: %.1f", scores.FleschReadingEase))
		}
		if stats := read.TextStats; stats != nil {
			insights = append(insights, fmt.Sprintf("  - Average Reading Time: %.1f minutes", stats.AverageReadingTime))
		}
		complexity := AnalyzeSentenceComplexity(result)
		if complexity.TotalSentences > 0 {
			hardPercent := float64(complexity.HardSentences+complexity.VeryHardSentences) / float64(complexity.TotalSentences) * 100
			insights = append(insights, fmt.Sprintf("  - %.1f%% of sentences are complex", hardPercent))
		}
	}

	if plag := result.Plagiarism; plag != nil {
		insights = append(insights, "Plagiarism Check:")
		insights = append(insights, fmt.Sprintf("  - Overall Score: %s%%", formatNumber(plag.Score)))
		if len(plag.Matches) > 0 {
			insights = append(insights, fmt.Sprintf("  - Found %d potential matches", len(plag.Matches)))
		}
	}

	return insights
}
