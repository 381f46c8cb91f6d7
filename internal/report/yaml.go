package report

import (
	"github.com/IvanShishkin/datahound/pkg/models"
	"gopkg.in/yaml.v3"
)

// generateYAML renders the full output as YAML with the JSON key names
func (g *Generator) generateYAML(data *models.OutputData) ([]byte, error) {
	return yaml.Marshal(data)
}
