package report

import (
	"encoding/json"

	"github.com/IvanShishkin/datahound/pkg/models"
)

// generateJSON renders the full output with stable summary and results keys
func (g *Generator) generateJSON(data *models.OutputData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
