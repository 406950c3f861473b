package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/originality-tools/oriscan/view"
)

// FormatResult renders a scan result as the human-readable report that is
// stored next to the raw JSON.
func FormatResult(result view.ScanResult) string {
	if result.Error != "" {
		return fmt.Sprintf("Error: %s", result.Error)
	}

	var output []string

	if ai := result.AI; ai != nil {
		if len(ai.Classification) > 0 {
			output = append(output, "", "AI Detection Results:")
			output = append(output, fmt.Sprintf("AI Probability: %s", mapValue(ai.Classification, "AI")))
			output = append(output, fmt.Sprintf("Original Probability: %s", mapValue(ai.Classification, "Original")))
		}
		if len(ai.Confidence) > 0 {
			output = append(output, "", "Confidence Scores:")
			output = append(output, fmt.Sprintf("AI Confidence: %s", mapPercent(ai.Confidence, "AI")))
			output = append(output, fmt.Sprintf("Original Confidence: %s", mapPercent(ai.Confidence, "Original")))
		}
	}

	if plag := result.Plagiarism; plag != nil {
		output = append(output, "", "Plagiarism Results:")
		output = append(output, fmt.Sprintf("Plagiarism Score: %s%%", formatNumber(plag.Score)))
		if len(plag.Matches) > 0 {
			output = append(output, "", "Plagiarism Matches:")
			for _, match := range plag.Matches {
				matchUrl := match.URL
				if matchUrl == "" {
					matchUrl = "N/A"
				}
				output = append(output, fmt.Sprintf("- %s: %s%% match", matchUrl, formatNumber(match.Score)))
			}
		}
	}

	if read := result.Readability; read != nil {
		if stats := read.TextStats; stats != nil {
			output = append(output, "", "Readability Metrics:")
			output = append(output, fmt.Sprintf("Word Count: %d", stats.UniqueWordCount))
			output = append(output, fmt.Sprintf("Sentence Count: %d", stats.SentenceCount))
			output = append(output, fmt.Sprintf("Average Speaking Time: %s minutes", formatNumber(stats.AverageSpeakingTime)))
			output = append(output, fmt.Sprintf("Average Reading Time: %s minutes", formatNumber(stats.AverageReadingTime)))
		}
		if scores := read.Readability; scores != nil {
			output = append(output, "", "Readability Scores:")
			output = append(output, fmt.Sprintf("Flesch Reading Ease: %s", formatNumber(scores.FleschReadingEase)))
			output = append(output, fmt.Sprintf("Flesch-Kincaid Grade Level: %s", formatNumber(scores.FleschGradeLevel)))
		}
	}

	if gs := result.GrammarSpelling; gs != nil && gs.Error != "" {
		output = append(output, "", fmt.Sprintf("Grammar & Spelling: %s", gs.Error))
	}

	if credits := result.Credits; credits != nil {
		output = append(output, "", "Credits Information:")
		output = append(output, fmt.Sprintf("Used Credits: %s", formatNumber(credits.Used)))
		output = append(output, fmt.Sprintf("Base Credits: %s", formatNumber(credits.BaseCredits)))
		output = append(output, fmt.Sprintf("Subscription Credits: %s", formatNumber(credits.SubscriptionCredits)))
	}

	if len(output) == 0 {
		return "No results available"
	}
	return strings.Join(output, "\n")
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func mapValue(values map[string]float64, key string) string {
	if value, ok := values[key]; ok {
		return formatNumber(value)
	}
	return "N/A"
}

func mapPercent(values map[string]float64, key string) string {
	if value, ok := values[key]; ok {
		return fmt.Sprintf("%.2f%%", value*100)
	}
	return "N/A"
}
