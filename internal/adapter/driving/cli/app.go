package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/application/usecase"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/repository"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
	"github.com/ArthurSampaio13/aws-finops-dashboard/pkg/version"
)

// CLIApp wires the cobra command tree to the dashboard use case.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	configRepo       repository.ConfigRepository
	version          string
}

func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:     "aws-finops",
		Short:   "AWS FinOps Dashboard CLI",
		Version: version.FormatVersion(),
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS FinOps Dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringSliceP("profiles", "p", nil, "Specific AWS profiles to use (comma-separated)")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "AWS regions to check for EC2 instances (comma-separated)")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "Use all available AWS profiles")
	rootCmd.PersistentFlags().BoolP("combine", "c", false, "Combine profiles from the same AWS account")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().IntP("time-range", "t", 0, "Time range for cost data in days (default: current month)")
	rootCmd.PersistentFlags().StringSliceP("tag", "g", nil, "Cost allocation tag to filter resources, e.g., --tag Team=DevOps")
	rootCmd.PersistentFlags().Bool("trend", false, "Display a trend report as bars for the past 6 months time range")
	rootCmd.PersistentFlags().Bool("audit", false, "Display an audit report with untagged resources, stopped EC2 instances, unused volumes and EIPs, idle load balancers and budget alerts")

	app.rootCmd = rootCmd
	return app
}

func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs reads the flags into a CLIArgs, merging values from the config
// file when one is given. Flags set on the command line always win over
// the config file.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	profiles, _ := flags.GetStringSlice("profiles")
	regions, _ := flags.GetStringSlice("regions")
	all, _ := flags.GetBool("all")
	combine, _ := flags.GetBool("combine")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	timeRangeDays, _ := flags.GetInt("time-range")
	tag, _ := flags.GetStringSlice("tag")
	trend, _ := flags.GetBool("trend")
	audit, _ := flags.GetBool("audit")

	if configFile != "" && app.configRepo != nil {
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		if !flags.Changed("profiles") && len(cfg.Profiles) > 0 {
			profiles = cfg.Profiles
		}
		if !flags.Changed("regions") && len(cfg.Regions) > 0 {
			regions = cfg.Regions
		}
		if !flags.Changed("combine") {
			combine = cfg.Combine
		}
		if !flags.Changed("report-name") && cfg.ReportName != "" {
			reportName = cfg.ReportName
		}
		if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
			reportType = cfg.ReportType
		}
		if !flags.Changed("dir") && cfg.Dir != "" {
			dir = cfg.Dir
		}
		if !flags.Changed("time-range") && cfg.TimeRange > 0 {
			timeRangeDays = cfg.TimeRange
		}
		if !flags.Changed("tag") && len(cfg.Tag) > 0 {
			tag = cfg.Tag
		}
		if !flags.Changed("trend") {
			trend = cfg.Trend
		}
		if !flags.Changed("audit") {
			audit = cfg.Audit
		}
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Profiles:   profiles,
		Regions:    regions,
		All:        all,
		Combine:    combine,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		TimeRange:  entity.LastNDays(timeRangeDays),
		Tag:        tag,
		Trend:      trend,
		Audit:      audit,
	}, nil
}

func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	return app.dashboardUseCase.RunDashboard(context.Background(), cliArgs)
}

func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}

func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}
