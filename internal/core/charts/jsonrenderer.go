package charts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JSONRenderer writes chart payloads as JSON artifacts. It is the default
// renderer when no image backend is configured; downstream tooling renders
// the payload however it likes.
type JSONRenderer struct {
	Dir string
}

// Render implements Renderer
func (r *JSONRenderer) Render(ctx context.Context, p Payload) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s chart: %w", p.Type, err)
	}

	name := fmt.Sprintf("%s_chart_%s.json", p.Type, time.Now().Format("20060102_150405"))
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s chart: %w", p.Type, err)
	}
	return path, nil
}
