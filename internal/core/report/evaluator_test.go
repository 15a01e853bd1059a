package report

import (
	"strings"
	"testing"
)

func fullReport() string {
	var b strings.Builder
	b.WriteString(`# Competitive Analysis Report: Netflix

## Executive Summary
Netflix leads the streaming market.

## 1. Company Overview
Streaming service.

## 2. Competitive Landscape
Disney+, Hulu, Max.

## 3. Competitive Analysis
Detailed comparison.

## 4. SWOT Analysis
**Strengths**
- Market leader
**Weaknesses**
- Content costs
**Opportunities**
- Gaming
**Threats**
- Password sharing crackdowns backfiring

## 5. Pricing Strategy Analysis
Tiered pricing.

## 6. Strategic Recommendations
- Expand ad tier

## Conclusion
Strong position.
`)
	// Pad to a comprehensive word count
	for i := 0; i < 600; i++ {
		b.WriteString("- detailed supporting analysis point with further context here\n")
	}
	return b.String()
}

func TestEvaluateReport_CompleteReport(t *testing.T) {
	eval := EvaluateReport(fullReport(), "Netflix")

	if eval.CompletenessScore != 100 {
		t.Errorf("CompletenessScore = %v, want 100 (missing: %v)", eval.CompletenessScore, eval.SectionsMissing)
	}
	if eval.QualityScore < 80 {
		t.Errorf("QualityScore = %v, want >= 80", eval.QualityScore)
	}
	if eval.OverallScore < 90 {
		t.Errorf("OverallScore = %v, want >= 90", eval.OverallScore)
	}
}

func TestEvaluateReport_MissingSections(t *testing.T) {
	eval := EvaluateReport("Just a short note about a company.", "Acme")

	if eval.CompletenessScore != 0 {
		t.Errorf("CompletenessScore = %v, want 0", eval.CompletenessScore)
	}
	if len(eval.SectionsMissing) != len(reportSections) {
		t.Errorf("SectionsMissing = %d, want %d", len(eval.SectionsMissing), len(reportSections))
	}
	if len(eval.Recommendations) == 0 {
		t.Error("expected recommendations for an incomplete report")
	}
	var sawMissing bool
	for _, r := range eval.Recommendations {
		if strings.HasPrefix(r, "Missing key sections:") {
			sawMissing = true
		}
	}
	if !sawMissing {
		t.Errorf("recommendations = %v, want missing-sections entry", eval.Recommendations)
	}
}

func TestEvaluateReport_PartialSWOT(t *testing.T) {
	doc := `## SWOT Analysis
**Strengths**
- One
**Weaknesses**
- Two
`
	eval := EvaluateReport(doc, "Acme")

	found := map[string]bool{}
	for _, s := range eval.SectionsFound {
		found[s] = true
	}
	if !found["SWOT Analysis"] || !found["Strengths"] || !found["Weaknesses"] {
		t.Errorf("SectionsFound = %v", eval.SectionsFound)
	}
	if found["Opportunities"] || found["Threats"] {
		t.Errorf("SectionsFound = %v, opportunities/threats should be missing", eval.SectionsFound)
	}
}

func TestEvaluateComparison(t *testing.T) {
	doc := strings.Repeat(`### 1. Market Position Comparison
Slack leads SMB, Microsoft Teams leads enterprise.
### 2. Product & Service Comparison
Feature sets overlap.
### 3. Competitive Advantages
Slack integrations; Microsoft Teams bundling.
### 4. Competitive Weaknesses
Slack pricing; Microsoft Teams complexity.
### 5. Pricing Strategy Comparison
Both tiered.
### 6. SWOT Comparison Matrix
Side by side.
### 7. Head-to-Head Analysis
Slack vs Microsoft Teams.
### 9. Winner Analysis
Slack for startups.
### 10. Final Verdict
Close call.
`, 40)

	eval := EvaluateComparison(doc, []string{"Slack", "Microsoft Teams"})

	if eval.CompletenessScore != 100 {
		t.Errorf("CompletenessScore = %v, want 100 (missing %v)", eval.CompletenessScore, eval.SectionsMissing)
	}
	if eval.QualityScore != 100 {
		t.Errorf("QualityScore = %v, want 100", eval.QualityScore)
	}
}

func TestEvaluateComparison_UnmentionedCompany(t *testing.T) {
	eval := EvaluateComparison("Only Slack is discussed here.", []string{"Slack", "Zoom"})

	if eval.QualityScore >= 30 {
		t.Errorf("QualityScore = %v, want below the all-mentioned threshold", eval.QualityScore)
	}
	if len(eval.Recommendations) == 0 {
		t.Error("expected coverage recommendations")
	}
}
