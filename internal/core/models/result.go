package models

// SWOT is a four-category strategic summary
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Empty reports whether no category has any entries
func (s SWOT) Empty() bool {
	return len(s.Strengths) == 0 && len(s.Weaknesses) == 0 &&
		len(s.Opportunities) == 0 && len(s.Threats) == 0
}

// Competitor is one identified competitor of the analyzed company
type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// CompanyAnalysisResult is the aggregate output of one single-company
// pipeline run. A failed run returns the partially filled result so callers
// can see how far the pipeline got.
type CompanyAnalysisResult struct {
	CompanyName         string       `json:"company_name"`
	Profile             string       `json:"profile"`
	Competitors         []Competitor `json:"competitors"`
	CompetitorsOverview string       `json:"competitors_overview"`
	CompetitiveAnalysis string       `json:"competitive_analysis"`
	SWOT                SWOT         `json:"swot"`
	PricingAnalysis     string       `json:"pricing_analysis"`
	Report              string       `json:"report"`
	ReportFilename      string       `json:"report_filename,omitempty"`
}

// Complete reports whether every pipeline stage populated its field
func (r *CompanyAnalysisResult) Complete() bool {
	return r.Profile != "" &&
		(len(r.Competitors) > 0 || r.CompetitorsOverview != "") &&
		r.CompetitiveAnalysis != "" &&
		!r.SWOT.Empty() &&
		r.PricingAnalysis != "" &&
		r.Report != ""
}

// ChartType identifies one comparison chart artifact
type ChartType string

const (
	ChartRadar   ChartType = "radar"
	ChartBar     ChartType = "bar"
	ChartHeatmap ChartType = "heatmap"
)

// AllChartTypes lists the chart types a comparison produces, in generation order.
var AllChartTypes = []ChartType{ChartRadar, ChartBar, ChartHeatmap}

// ChartArtifact is one generated chart, keyed by type in ComparisonResult
type ChartArtifact struct {
	Type ChartType `json:"type"`
	Path string    `json:"path"`
}

// ComparisonResult aggregates 2-5 company analyses into a comparative report
type ComparisonResult struct {
	Companies     []string                    `json:"companies"`
	Narrative     string                      `json:"narrative"`
	Winner        string                      `json:"winner"`
	Charts        map[ChartType]ChartArtifact `json:"charts"`
	MissingCharts []ChartType                 `json:"missing_charts,omitempty"`
	ReportFile    string                      `json:"report_file,omitempty"`
}
