package main

import (
	"fmt"
	"os"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/adapter/driven/aws"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/adapter/driven/config"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/adapter/driven/export"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/adapter/driving/cli"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/application/usecase"
	"github.com/ArthurSampaio13/aws-finops-dashboard/pkg/console"
	"github.com/ArthurSampaio13/aws-finops-dashboard/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	consoleImpl := console.NewConsole()
	awsRepo := aws.NewAWSRepository(consoleImpl)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()

	dashboardUseCase := usecase.NewDashboardUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)
	app.SetConfigRepository(configRepo)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
