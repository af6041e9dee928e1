package template

import (
	"bacmap/internal/types"
)

// Effectiveness summarizes a template's historical applications into one
// report. overallEffectiveness multiplies the success ratio by the mean
// match rate and the mean confidence, so all three have to be healthy for
// the template to score well.
func Effectiveness(template types.EquipmentTemplate, applications []types.TemplateApplication) types.EffectivenessReport {
	report := types.EffectivenessReport{
		TemplateID:     template.ID,
		UsageFrequency: len(applications),
	}
	if len(applications) == 0 {
		report.Recommendations = append(report.Recommendations,
			"template has never been applied, apply it to a representative equipment to gather data")
		return report
	}

	successful := 0
	matchRateSum, confidenceSum := 0.0, 0.0
	for _, app := range applications {
		if app.IsSuccessful {
			successful++
		}
		total := len(template.Points)
		if total > 0 {
			matchRateSum += float64(app.MatchingResults.MatchedPoints) / float64(total)
		}
		confidenceSum += app.MatchingResults.AverageConfidence
	}

	n := float64(len(applications))
	successRatio := float64(successful) / n
	report.PointMatchRate = matchRateSum / n
	report.ConfidenceScore = confidenceSum / n
	report.OverallEffectiveness = successRatio * report.PointMatchRate * report.ConfidenceScore

	if report.OverallEffectiveness < 0.60 {
		report.Recommendations = append(report.Recommendations,
			"overall effectiveness is low, review the template's point set against recent equipment exports")
	}
	if report.PointMatchRate < 0.70 {
		report.Recommendations = append(report.Recommendations,
			"point match rate is low, check facet values and consider enabling partial matching")
	}
	if report.ConfidenceScore < 0.80 {
		report.Recommendations = append(report.Recommendations,
			"average binding confidence is low, normalize point names or refine the dictionary before applying")
	}
	return report
}
