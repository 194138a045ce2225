package types

import "github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"

// CLIArgs represents the command-line arguments after config-file merging.
type CLIArgs struct {
	ConfigFile string
	Profiles   []string
	Regions    []string
	All        bool
	Combine    bool
	ReportName string
	ReportType []string
	Dir        string
	TimeRange  entity.TimeRange
	Tag        []string
	Trend      bool
	Audit      bool
}
