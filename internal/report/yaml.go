package report

import (
	"io"

	"github.com/IvanShishkin/dirhound/pkg/models"
	"gopkg.in/yaml.v3"
)

// generateYAML generates a YAML report
func (g *Generator) generateYAML(w io.Writer, report *models.AnalysisReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
