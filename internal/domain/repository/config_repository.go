package repository

import (
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
