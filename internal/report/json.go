package report

import (
	"encoding/json"
	"io"

	"github.com/IvanShishkin/dirhound/pkg/models"
)

// generateJSON generates a JSON report
func (g *Generator) generateJSON(w io.Writer, report *models.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
