// Package report composes, stores and evaluates the markdown documents the
// analysis pipeline produces.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/igupta/rivalscope/internal/core/models"
)

const timestampFormat = "20060102_150405"

// comparisonFrame wraps the comparison narrative with metadata. The
// narrative is raw markdown, hence the triple mustache.
const comparisonFrame = `# Multi-Company Competitive Comparison
*Comparing: {{joined}}*
*Generated on {{generated}}*

---

{{{narrative}}}

---

## Report Metadata
- **Companies Analyzed**: {{count}}
- **Companies**: {{joined}}
{{#winner}}
- **Overall Leader**: {{winner}}
{{/winner}}
- **Report Type**: Multi-Company Comparative Analysis
{{#charts}}
- **Chart ({{type}})**: {{path}}
{{/charts}}
{{#missing}}
- **Chart unavailable**: {{.}}
{{/missing}}
`

// Writer stores report documents under a directory with timestamped names
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a report writer rooted at dir
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// SaveAnalysis writes a single-company report and returns its path.
// Filename: <Company>_competitive_analysis_<timestamp>.md, spaces in the
// company name replaced with underscores.
func (w *Writer) SaveAnalysis(report, company string) (string, error) {
	name := fmt.Sprintf("%s_competitive_analysis_%s.md",
		sanitize(company), w.now().Format(timestampFormat))
	return w.write(name, report)
}

// SaveComparison frames the comparison narrative with metadata and writes
// it. Filename: comparison_<A>_vs_<B>_<timestamp>.md.
func (w *Writer) SaveComparison(narrative string, result *models.ComparisonResult) (string, error) {
	sanitized := make([]string, 0, len(result.Companies))
	for _, c := range result.Companies {
		sanitized = append(sanitized, sanitize(c))
	}

	charts := make([]map[string]string, 0, len(result.Charts))
	for _, ct := range models.AllChartTypes {
		if artifact, ok := result.Charts[ct]; ok {
			charts = append(charts, map[string]string{
				"type": string(ct),
				"path": artifact.Path,
			})
		}
	}

	data := map[string]any{
		"joined":    strings.Join(result.Companies, ", "),
		"generated": w.now().Format("January 2, 2006 at 15:04"),
		"narrative": narrative,
		"count":     len(result.Companies),
		"charts":    charts,
		"missing":   result.MissingCharts,
	}
	// An absent key keeps the section from rendering; an empty string would not
	if result.Winner != "" {
		data["winner"] = result.Winner
	}

	doc, err := mustache.Render(comparisonFrame, data)
	if err != nil {
		return "", fmt.Errorf("failed to render comparison report: %w", err)
	}

	name := fmt.Sprintf("comparison_%s_%s.md",
		strings.Join(sanitized, "_vs_"), w.now().Format(timestampFormat))
	return w.write(name, doc)
}

func (w *Writer) write(name, content string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func sanitize(company string) string {
	return strings.ReplaceAll(strings.TrimSpace(company), " ", "_")
}
