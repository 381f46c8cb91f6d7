//go:build !windows

package platform

import (
	"github.com/IvanShishkin/datahound/pkg/models"
	"go.uber.org/zap"
)

// readMailProfiles has no profile store to read outside Windows
func readMailProfiles(logger *zap.Logger) ([]models.EmailProfile, error) {
	logger.Debug("Mail profile lookup not supported on this platform")
	return []models.EmailProfile{}, nil
}
