package report

import (
	"fmt"
	"regexp"
	"strings"
)

// Evaluation scores a report's completeness and structural quality on a
// 0-100 scale. Completeness counts required sections; quality weighs
// length, SWOT coverage, structure and strategic elements.
type Evaluation struct {
	Company           string   `json:"company,omitempty"`
	WordCount         int      `json:"word_count"`
	SectionsFound     []string `json:"sections_found"`
	SectionsMissing   []string `json:"sections_missing"`
	CompletenessScore float64  `json:"completeness_score"`
	QualityScore      float64  `json:"quality_score"`
	OverallScore      float64  `json:"overall_score"`
	Recommendations   []string `json:"recommendations"`
}

type sectionCheck struct {
	name    string
	pattern *regexp.Regexp
}

var reportSections = []sectionCheck{
	{"Executive Summary", regexp.MustCompile(`(?i)executive\s+summary`)},
	{"Company Overview", regexp.MustCompile(`(?i)company\s+overview`)},
	{"Competitive Analysis", regexp.MustCompile(`(?i)competitive\s+analysis`)},
	{"SWOT Analysis", regexp.MustCompile(`(?i)swot\s+analysis`)},
	{"Strengths", regexp.MustCompile(`(?i)\*\*strengths\*\*|\bstrengths\b:`)},
	{"Weaknesses", regexp.MustCompile(`(?i)\*\*weaknesses\*\*|\bweaknesses\b:`)},
	{"Opportunities", regexp.MustCompile(`(?i)\*\*opportunities\*\*|\bopportunities\b:`)},
	{"Threats", regexp.MustCompile(`(?i)\*\*threats\*\*|\bthreats\b:`)},
	{"Pricing", regexp.MustCompile(`(?i)pricing\s+(strategy|analysis)`)},
	{"Recommendations", regexp.MustCompile(`(?i)recommendations?|strategic\s+recommendations`)},
	{"Conclusion", regexp.MustCompile(`(?i)conclusion`)},
}

var comparisonSections = []sectionCheck{
	{"Market Position Comparison", regexp.MustCompile(`(?i)market\s+position\s+comparison`)},
	{"Product Comparison", regexp.MustCompile(`(?i)product.*comparison`)},
	{"Competitive Advantages", regexp.MustCompile(`(?i)competitive\s+advantages`)},
	{"Competitive Weaknesses", regexp.MustCompile(`(?i)competitive\s+weaknesses`)},
	{"Pricing Comparison", regexp.MustCompile(`(?i)pricing.*comparison`)},
	{"SWOT Comparison", regexp.MustCompile(`(?i)swot.*comparison`)},
	{"Head-to-Head", regexp.MustCompile(`(?i)head-to-head`)},
	{"Winner Analysis", regexp.MustCompile(`(?i)winner\s+analysis`)},
	{"Final Verdict", regexp.MustCompile(`(?i)final\s+verdict`)},
}

// EvaluateReport scores a single-company competitive analysis report
func EvaluateReport(doc, company string) Evaluation {
	eval := Evaluation{
		Company:   company,
		WordCount: len(strings.Fields(doc)),
	}

	swotParts := map[string]bool{}
	for _, sec := range reportSections {
		if sec.pattern.MatchString(doc) {
			eval.SectionsFound = append(eval.SectionsFound, sec.name)
			swotParts[sec.name] = true
		} else {
			eval.SectionsMissing = append(eval.SectionsMissing, sec.name)
		}
	}
	eval.CompletenessScore = round2(float64(len(eval.SectionsFound)) / float64(len(reportSections)) * 100)

	hasSWOT := swotParts["SWOT Analysis"]
	hasAllSWOTParts := swotParts["Strengths"] && swotParts["Weaknesses"] &&
		swotParts["Opportunities"] && swotParts["Threats"]
	hasRecommendations := swotParts["Recommendations"]
	hasConclusion := swotParts["Conclusion"]
	bullets := strings.Count(doc, "- ") + strings.Count(doc, "* ")
	headers := strings.Count(doc, "#")

	// Length depth, 0-30 points
	quality := 0.0
	switch {
	case eval.WordCount >= 5000:
		quality += 30
	case eval.WordCount >= 3000:
		quality += 25
	case eval.WordCount >= 2000:
		quality += 20
	case eval.WordCount >= 1000:
		quality += 15
	default:
		quality += 10
	}

	// SWOT coverage, 0-25 points
	if hasAllSWOTParts {
		quality += 25
	} else if hasSWOT {
		quality += 15
	}

	// Structure, 0-25 points
	if bullets >= 20 {
		quality += 15
	} else if bullets >= 10 {
		quality += 10
	}
	if headers >= 8 {
		quality += 10
	} else if headers >= 5 {
		quality += 5
	}

	// Strategic elements, 0-20 points
	if hasRecommendations {
		quality += 10
	}
	if hasConclusion {
		quality += 10
	}

	if quality > 100 {
		quality = 100
	}
	eval.QualityScore = quality
	eval.OverallScore = round2(eval.CompletenessScore*0.5 + eval.QualityScore*0.5)

	if !hasAllSWOTParts {
		eval.Recommendations = append(eval.Recommendations, "Ensure all SWOT components are present")
	}
	if eval.WordCount < 3000 {
		eval.Recommendations = append(eval.Recommendations, "Consider adding more detailed analysis")
	}
	if !hasRecommendations {
		eval.Recommendations = append(eval.Recommendations, "Add strategic recommendations section")
	}
	if len(eval.SectionsMissing) > 3 {
		eval.Recommendations = append(eval.Recommendations,
			fmt.Sprintf("Missing key sections: %s", strings.Join(eval.SectionsMissing[:3], ", ")))
	}
	return eval
}

// EvaluateComparison scores a multi-company comparison report. Quality
// rewards every company being mentioned, balanced coverage between the
// most- and least-mentioned companies, and adequate length.
func EvaluateComparison(doc string, companies []string) Evaluation {
	eval := Evaluation{
		WordCount: len(strings.Fields(doc)),
	}

	for _, sec := range comparisonSections {
		if sec.pattern.MatchString(doc) {
			eval.SectionsFound = append(eval.SectionsFound, sec.name)
		} else {
			eval.SectionsMissing = append(eval.SectionsMissing, sec.name)
		}
	}
	eval.CompletenessScore = round2(float64(len(eval.SectionsFound)) / float64(len(comparisonSections)) * 100)

	lower := strings.ToLower(doc)
	minMentions, maxMentions := -1, 0
	for _, company := range companies {
		n := strings.Count(lower, strings.ToLower(company))
		if minMentions < 0 || n < minMentions {
			minMentions = n
		}
		if n > maxMentions {
			maxMentions = n
		}
	}
	allMentioned := minMentions > 0
	balanced := minMentions > 0 && float64(maxMentions)/float64(minMentions) < 2

	quality := 0.0
	if allMentioned {
		quality += 30
	}
	if balanced {
		quality += 20
	}
	if eval.WordCount >= 2000 {
		quality += 25
	}
	if len(eval.SectionsFound) >= 7 {
		quality += 25
	}
	eval.QualityScore = quality
	eval.OverallScore = round2((eval.CompletenessScore + eval.QualityScore) / 2)

	if !allMentioned {
		eval.Recommendations = append(eval.Recommendations, "Cover every compared company")
	}
	if !balanced {
		eval.Recommendations = append(eval.Recommendations, "Balance coverage across companies")
	}
	return eval
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
