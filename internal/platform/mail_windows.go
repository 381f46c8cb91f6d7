//go:build windows

package platform

import (
	"errors"

	"github.com/IvanShishkin/datahound/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"
)

// Outlook keeps profiles under an unversioned key (older releases) and under
// per-version keys since Office 2013.
var outlookProfileKeys = []string{
	`Software\Microsoft\Office\Outlook\Profiles`,
	`Software\Microsoft\Office\16.0\Outlook\Profiles`,
	`Software\Microsoft\Office\15.0\Outlook\Profiles`,
}

// readMailProfiles lists Outlook profile names from HKCU. Folder contents are
// never opened.
func readMailProfiles(logger *zap.Logger) ([]models.EmailProfile, error) {
	profiles := []models.EmailProfile{}
	seen := make(map[string]bool)

	for _, path := range outlookProfileKeys {
		names, err := readSubKeyNames(path)
		if err != nil {
			if errors.Is(err, registry.ErrNotExist) {
				logger.Debug("Outlook profile key not found", zap.String("key", path))
			} else {
				logger.Info("Outlook profiles not accessible", zap.String("key", path), zap.Error(err))
			}
			continue
		}

		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			profiles = append(profiles, models.NewEmailProfile(name))
		}
	}

	if len(profiles) == 0 {
		logger.Info("Outlook profiles not found")
	}
	return profiles, nil
}

func readSubKeyNames(path string) ([]string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return key.ReadSubKeyNames(-1)
}
