package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/application/costs"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/repository"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
)

// DashboardUseCase orchestrates a report run: profile resolution, data
// collection, display and export.
type DashboardUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

func NewDashboardUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// InitializeProfiles resolves which profiles the run covers. Explicit
// profiles are validated against the shared AWS config; unknown names log
// a warning and are skipped. Without explicit profiles the default profile
// is used when present, otherwise all available profiles.
func (uc *DashboardUseCase) InitializeProfiles(args *types.CLIArgs) ([]string, []string, entity.TimeRange, error) {
	availableProfiles := uc.awsRepo.GetAWSProfiles()
	if len(availableProfiles) == 0 {
		return nil, nil, entity.TimeRange{}, types.ErrNoProfilesFound
	}

	available := make(map[string]bool, len(availableProfiles))
	for _, profile := range availableProfiles {
		available[profile] = true
	}

	var profilesToUse []string
	switch {
	case len(args.Profiles) > 0:
		for _, profile := range args.Profiles {
			if available[profile] {
				profilesToUse = append(profilesToUse, profile)
			} else {
				uc.console.LogWarning("Profile '%s' not found in AWS configuration", profile)
			}
		}
		if len(profilesToUse) == 0 {
			return nil, nil, entity.TimeRange{}, types.ErrNoValidProfilesFound
		}
	case args.All:
		profilesToUse = availableProfiles
	case available["default"]:
		profilesToUse = []string{"default"}
	default:
		profilesToUse = availableProfiles
		uc.console.LogWarning("No default profile found. Using all available profiles.")
	}

	return profilesToUse, args.Regions, args.TimeRange, nil
}

// RunDashboard is the main entry point. Audit and trend modes short
// circuit; otherwise the cost dashboard is generated, displayed and
// exported. Export failures are logged per artifact and never abort the
// run.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	profilesToUse, userRegions, timeRange, err := uc.InitializeProfiles(args)
	if err != nil {
		return err
	}

	if args.Audit {
		auditData, err := uc.RunAuditReport(ctx, profilesToUse, args)
		if err != nil {
			return err
		}
		if args.ReportName != "" {
			uc.exportAuditReports(auditData, args)
		}
		return nil
	}

	if args.Trend {
		return uc.RunTrendAnalysis(ctx, profilesToUse, args)
	}

	status := uc.console.Status("Initializing dashboard...")

	previousPeriodName, currentPeriodName, previousPeriodDates, currentPeriodDates :=
		uc.getDisplayTablePeriodInfo(ctx, profilesToUse, timeRange)

	table := uc.createDisplayTable(previousPeriodDates, currentPeriodDates, previousPeriodName, currentPeriodName)

	exportData := uc.generateDashboardData(ctx, profilesToUse, userRegions, timeRange, args, table, status)
	status.Stop()

	uc.console.Print(table.Render())

	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				path, err := uc.exportRepo.ExportToCSV(exportData, args.ReportName, args.Dir, previousPeriodDates, currentPeriodDates)
				if err != nil {
					uc.console.LogError("Failed to export to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to CSV: %s", path)
				}
			case "json":
				path, err := uc.exportRepo.ExportToJSON(exportData, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to JSON: %s", path)
				}
			case "pdf":
				path, err := uc.exportRepo.ExportToPDF(exportData, args.ReportName, args.Dir, previousPeriodDates, currentPeriodDates)
				if err != nil {
					uc.console.LogError("Failed to export to PDF: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to PDF: %s", path)
				}
			}
		}
	}

	return nil
}

func (uc *DashboardUseCase) exportAuditReports(auditData []entity.AuditData, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportAuditReportToCSV(auditData, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export audit report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported audit report to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportAuditReportToJSON(auditData, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export audit report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported audit report to JSON: %s", path)
			}
		default:
			uc.console.LogWarning("Audit reports do not support the %s format", reportType)
		}
	}
}

// RunAuditReport collects cost-hygiene findings per profile: untagged
// resources, stopped instances, unused volumes and EIPs, idle load
// balancers and exceeded budgets. Individual queries degrade to an error
// note inside their column.
func (uc *DashboardUseCase) RunAuditReport(ctx context.Context, profilesToUse []string, args *types.CLIArgs) ([]entity.AuditData, error) {
	uc.console.LogInfo("Preparing your audit report...")

	table := uc.console.CreateTable()
	table.AddColumn("Profile")
	table.AddColumn("Account ID")
	table.AddColumn("Untagged Resources")
	table.AddColumn("Stopped EC2 Instances")
	table.AddColumn("Unused Volumes")
	table.AddColumn("Unused EIPs")
	table.AddColumn("Idle Load Balancers")
	table.AddColumn("Budget Alerts")

	auditDataList := []entity.AuditData{}

	for _, profile := range profilesToUse {
		accountID, err := uc.awsRepo.GetAccountID(ctx, profile)
		if err != nil {
			accountID = "Unknown"
		}

		regions := args.Regions
		if len(regions) == 0 {
			regions, err = uc.awsRepo.GetAccessibleRegions(ctx, profile)
			if err != nil {
				uc.console.LogWarning("Could not get accessible regions for profile %s: %s", profile, err)
				regions = []string{"us-east-1", "us-west-2", "eu-west-1"}
			}
		}

		untaggedBlock := uc.formatUntaggedResources(ctx, profile, regions)
		stoppedBlock := uc.formatRegionalFindings(
			func() (map[string][]string, error) { return uc.awsRepo.GetStoppedInstances(ctx, profile, regions) },
			pterm.FgYellow)
		volumesBlock := uc.formatRegionalFindings(
			func() (map[string][]string, error) { return uc.awsRepo.GetUnusedVolumes(ctx, profile, regions) },
			pterm.FgLightRed)
		eipsBlock := uc.formatRegionalFindings(
			func() (map[string][]string, error) { return uc.awsRepo.GetUnusedEIPs(ctx, profile, regions) },
			pterm.FgLightRed)
		idleLBsBlock := uc.formatRegionalFindings(
			func() (map[string][]string, error) { return uc.awsRepo.GetIdleLoadBalancers(ctx, profile, regions) },
			pterm.FgLightRed)
		alertsBlock := uc.formatBudgetAlerts(ctx, profile)

		auditData := entity.AuditData{
			Profile:           profile,
			AccountID:         accountID,
			UntaggedResources: untaggedBlock,
			StoppedInstances:  stoppedBlock,
			UnusedVolumes:     volumesBlock,
			UnusedEIPs:        eipsBlock,
			IdleLoadBalancers: idleLBsBlock,
			BudgetAlerts:      alertsBlock,
		}
		auditDataList = append(auditDataList, auditData)

		table.AddRow(
			pterm.FgMagenta.Sprintf("%s", profile),
			accountID,
			untaggedBlock,
			stoppedBlock,
			volumesBlock,
			eipsBlock,
			idleLBsBlock,
			alertsBlock,
		)
	}

	uc.console.Print(table.Render())
	uc.console.Println()
	uc.console.LogInfo("Note: the audit only covers untagged EC2, RDS, Lambda and ELBv2 resources.\n")

	return auditDataList, nil
}

func (uc *DashboardUseCase) formatUntaggedResources(ctx context.Context, profile string, regions []string) string {
	untagged, err := uc.awsRepo.GetUntaggedResources(ctx, profile, regions)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	services := make([]string, 0, len(untagged))
	for service := range untagged {
		services = append(services, service)
	}
	sort.Strings(services)

	var blocks []string
	for _, service := range services {
		regionMap := untagged[service]
		if len(regionMap) == 0 {
			continue
		}
		block := fmt.Sprintf("%s:\n", pterm.FgYellow.Sprint(service))
		regionNames := make([]string, 0, len(regionMap))
		for region := range regionMap {
			regionNames = append(regionNames, region)
		}
		sort.Strings(regionNames)
		for _, region := range regionNames {
			if len(regionMap[region]) > 0 {
				block += fmt.Sprintf("\n%s:\n%s\n", region, strings.Join(regionMap[region], "\n"))
			}
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return "None"
	}
	return strings.Join(blocks, "\n")
}

func (uc *DashboardUseCase) formatRegionalFindings(fetch func() (map[string][]string, error), color pterm.Color) string {
	findings, err := fetch()
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	regions := make([]string, 0, len(findings))
	for region := range findings {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	var lines []string
	for _, region := range regions {
		if len(findings[region]) > 0 {
			lines = append(lines, fmt.Sprintf("%s:\n%s", region,
				pterm.NewStyle(color).Sprint(strings.Join(findings[region], "\n"))))
		}
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

func (uc *DashboardUseCase) formatBudgetAlerts(ctx context.Context, profile string) string {
	budgetData, err := uc.awsRepo.GetBudgets(ctx, profile)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	var alerts []string
	for _, b := range budgetData {
		if b.Actual > b.Limit {
			alerts = append(alerts, fmt.Sprintf("%s: $%.2f > $%.2f", pterm.FgRed.Sprint(b.Name), b.Actual, b.Limit))
		}
	}
	if len(alerts) == 0 {
		return "No budgets exceeded"
	}
	return strings.Join(alerts, "\n")
}

// RunTrendAnalysis renders a six-month cost trend per profile, or per
// account when combining profiles that share an account.
func (uc *DashboardUseCase) RunTrendAnalysis(ctx context.Context, profilesToUse []string, args *types.CLIArgs) error {
	uc.console.LogInfo("Analysing cost trends...")

	if args.Combine {
		accountProfiles := uc.groupProfilesByAccount(ctx, profilesToUse)
		accountIDs := make([]string, 0, len(accountProfiles))
		for accountID := range accountProfiles {
			accountIDs = append(accountIDs, accountID)
		}
		sort.Strings(accountIDs)

		for _, accountID := range accountIDs {
			profiles := accountProfiles[accountID]
			monthlyCosts, _, err := uc.awsRepo.GetTrendData(ctx, profiles[0], args.Tag)
			if err != nil {
				uc.console.LogError("Error getting trend for account %s: %s", accountID, err)
				continue
			}
			if len(monthlyCosts) == 0 {
				uc.console.LogWarning("No trend data available for account %s", accountID)
				continue
			}

			uc.console.Printf("\n%s\n",
				pterm.FgYellow.Sprintf("Account: %s (Profiles: %s)", accountID, strings.Join(profiles, ", ")))
			uc.console.DisplayTrendBars(monthlyCosts)
		}
		return nil
	}

	for _, profile := range profilesToUse {
		monthlyCosts, accountID, err := uc.awsRepo.GetTrendData(ctx, profile, args.Tag)
		if err != nil {
			uc.console.LogError("Error getting trend for profile %s: %s", profile, err)
			continue
		}
		if len(monthlyCosts) == 0 {
			uc.console.LogWarning("No trend data available for profile %s", profile)
			continue
		}
		if accountID == "" {
			accountID = "Unknown"
		}

		uc.console.Printf("\n%s\n",
			pterm.FgYellow.Sprintf("Account: %s (Profile: %s)", accountID, profile))
		uc.console.DisplayTrendBars(monthlyCosts)
	}
	return nil
}

func (uc *DashboardUseCase) groupProfilesByAccount(ctx context.Context, profiles []string) map[string][]string {
	accountProfiles := make(map[string][]string)
	for _, profile := range profiles {
		accountID, err := uc.awsRepo.GetAccountID(ctx, profile)
		if err != nil {
			uc.console.LogError("Error checking account ID for profile %s: %s", profile, err)
			continue
		}
		accountProfiles[accountID] = append(accountProfiles[accountID], profile)
	}
	return accountProfiles
}

// generateDashboardData collects one ProfileData per profile, or per
// account when combining. A failed profile becomes an error row instead of
// aborting the run.
func (uc *DashboardUseCase) generateDashboardData(
	ctx context.Context,
	profilesToUse []string,
	userRegions []string,
	timeRange entity.TimeRange,
	args *types.CLIArgs,
	table types.TableInterface,
	status types.StatusHandle,
) []entity.ProfileData {
	exportData := []entity.ProfileData{}

	if args.Combine {
		accountProfiles := uc.groupProfilesByAccount(ctx, profilesToUse)
		accountIDs := make([]string, 0, len(accountProfiles))
		for accountID := range accountProfiles {
			accountIDs = append(accountIDs, accountID)
		}
		sort.Strings(accountIDs)

		progress := uc.console.ProgressWithTotal(len(accountProfiles) * 5)
		for _, accountID := range accountIDs {
			profiles := accountProfiles[accountID]
			status.Update(fmt.Sprintf("Processing account %s...", accountID))

			var profileData entity.ProfileData
			if len(profiles) > 1 {
				profileData = uc.processCombinedProfilesWithProgress(ctx, accountID, profiles, userRegions, timeRange, args.Tag, progress, status)
			} else {
				profileData = uc.ProcessSingleProfileWithProgress(ctx, profiles[0], userRegions, timeRange, args.Tag, progress, status)
			}

			exportData = append(exportData, profileData)
			uc.addProfileToTable(table, profileData)
		}
		progress.Stop()
		return exportData
	}

	progress := uc.console.ProgressWithTotal(len(profilesToUse) * 5)
	for _, profile := range profilesToUse {
		status.Update(fmt.Sprintf("Processing profile %s...", profile))
		profileData := uc.ProcessSingleProfileWithProgress(ctx, profile, userRegions, timeRange, args.Tag, progress, status)
		exportData = append(exportData, profileData)
		uc.addProfileToTable(table, profileData)
	}
	progress.Stop()
	return exportData
}

// ProcessSingleProfileWithProgress builds the report row for one profile,
// advancing the progress bar through five steps.
func (uc *DashboardUseCase) ProcessSingleProfileWithProgress(
	ctx context.Context,
	profile string,
	userRegions []string,
	timeRange entity.TimeRange,
	tags []string,
	progress types.ProgressHandle,
	status types.StatusHandle,
) entity.ProfileData {
	profileData := entity.ProfileData{Profile: profile}

	failWith := func(err error, remaining int) entity.ProfileData {
		profileData.Error = err.Error()
		for i := 0; i < remaining; i++ {
			progress.Increment()
		}
		return profileData
	}

	status.Update(fmt.Sprintf("Getting account data for %s...", profile))
	if accountID, err := uc.awsRepo.GetAccountID(ctx, profile); err == nil {
		profileData.AccountID = accountID
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Getting cost data for %s...", profile))
	costData, err := uc.awsRepo.GetCostData(ctx, profile, timeRange, tags)
	if err != nil {
		return failWith(err, 4)
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Getting EC2 data for %s...", profile))
	regions := userRegions
	if len(regions) == 0 {
		regions, err = uc.awsRepo.GetAccessibleRegions(ctx, profile)
		if err != nil {
			return failWith(err, 3)
		}
	}
	progress.Increment()

	ec2Summary, err := uc.awsRepo.GetEC2Summary(ctx, profile, regions)
	if err != nil {
		return failWith(err, 2)
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Processing data for %s...", profile))
	serviceCosts, serviceCostsFormatted := uc.processServiceCosts(costData)
	progress.Increment()

	return entity.ProfileData{
		Profile:               profile,
		AccountID:             costData.AccountID,
		PreviousPeriodCost:    costData.PreviousPeriodCost,
		CurrentPeriodCost:     costData.CurrentPeriodCost,
		ServiceCosts:          serviceCosts,
		ServiceCostsFormatted: serviceCostsFormatted,
		BudgetInfo:            uc.formatBudgetInfo(costData.Budgets),
		EC2Summary:            ec2Summary,
		EC2SummaryFormatted:   uc.formatEC2Summary(ec2Summary),
		Success:               true,
		CurrentPeriodName:     costData.CurrentPeriodName,
		PreviousPeriodName:    costData.PreviousPeriodName,
		PercentChangeInCost:   percentChange(costData.PreviousPeriodCost, costData.CurrentPeriodCost),
	}
}

// processCombinedProfilesWithProgress merges profiles sharing one account
// into a single row. Cost data comes from the first profile (it is
// account-scoped anyway); EC2 counts are summed across all profiles.
func (uc *DashboardUseCase) processCombinedProfilesWithProgress(
	ctx context.Context,
	accountID string,
	profiles []string,
	userRegions []string,
	timeRange entity.TimeRange,
	tags []string,
	progress types.ProgressHandle,
	status types.StatusHandle,
) entity.ProfileData {
	primaryProfile := profiles[0]

	profileData := entity.ProfileData{
		Profile:               strings.Join(profiles, ", "),
		AccountID:             accountID,
		EC2Summary:            entity.EC2Summary{},
		ServiceCostsFormatted: []string{},
		BudgetInfo:            []string{},
		EC2SummaryFormatted:   []string{},
	}

	status.Update(fmt.Sprintf("Initializing account %s with %d profiles...", accountID, len(profiles)))
	progress.Increment()

	status.Update(fmt.Sprintf("Getting cost data for account %s (via %s)...", accountID, primaryProfile))
	costData, err := uc.awsRepo.GetCostData(ctx, primaryProfile, timeRange, tags)
	if err != nil {
		uc.console.LogError("Error getting cost data for account %s: %s", accountID, err)
		profileData.Error = fmt.Sprintf("Failed to process account: %s", err)
		for i := 0; i < 4; i++ {
			progress.Increment()
		}
		return profileData
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Determining accessible regions for account %s...", accountID))
	regions := userRegions
	if len(regions) == 0 {
		regions, err = uc.awsRepo.GetAccessibleRegions(ctx, primaryProfile)
		if err != nil {
			uc.console.LogWarning("Error getting accessible regions: %s", err)
			regions = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-1"}
		}
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Getting EC2 data across all profiles for account %s...", accountID))
	ec2Summary := entity.EC2Summary{"running": 0, "stopped": 0}
	for _, profile := range profiles {
		status.Update(fmt.Sprintf("Getting EC2 data for profile %s in account %s...",
			pterm.FgCyan.Sprint(profile), pterm.FgCyan.Sprint(accountID)))

		profileEC2Summary, err := uc.awsRepo.GetEC2Summary(ctx, profile, regions)
		if err != nil {
			uc.console.LogWarning("Error getting EC2 summary for profile %s: %s", profile, err)
			continue
		}
		for state, count := range profileEC2Summary {
			ec2Summary[state] += count
		}
	}
	progress.Increment()

	status.Update(fmt.Sprintf("Processing combined data for account %s...", accountID))
	serviceCosts, serviceCostsFormatted := uc.processServiceCosts(costData)
	progress.Increment()

	profileData.Success = true
	profileData.PreviousPeriodCost = costData.PreviousPeriodCost
	profileData.CurrentPeriodCost = costData.CurrentPeriodCost
	profileData.ServiceCosts = serviceCosts
	profileData.ServiceCostsFormatted = serviceCostsFormatted
	profileData.BudgetInfo = uc.formatBudgetInfo(costData.Budgets)
	profileData.EC2Summary = ec2Summary
	profileData.EC2SummaryFormatted = uc.formatEC2Summary(ec2Summary)
	profileData.CurrentPeriodName = costData.CurrentPeriodName
	profileData.PreviousPeriodName = costData.PreviousPeriodName
	profileData.PercentChangeInCost = percentChange(costData.PreviousPeriodCost, costData.CurrentPeriodCost)

	uc.console.LogSuccess("Successfully processed combined data for account %s with %d profiles", accountID, len(profiles))
	return profileData
}

// percentChange returns the percent change between periods, nil when the
// previous period has no meaningful spend to compare against, and zero
// when both periods are effectively empty.
func percentChange(previous, current float64) *float64 {
	if previous > 0.01 {
		change := ((current - previous) / previous) * 100.0
		return &change
	}
	if current < 0.01 {
		change := 0.0
		return &change
	}
	return nil
}

// processServiceCosts filters already-aggregated service costs for display
// and renders one line per service.
func (uc *DashboardUseCase) processServiceCosts(costData entity.CostData) ([]entity.ServiceCost, []string) {
	serviceCosts := []entity.ServiceCost{}
	for _, serviceCost := range costData.CostByService {
		if serviceCost.Cost > 0.001 {
			serviceCosts = append(serviceCosts, serviceCost)
		}
	}
	sort.SliceStable(serviceCosts, func(i, j int) bool {
		return serviceCosts[i].Cost > serviceCosts[j].Cost
	})
	return serviceCosts, costs.FormatServiceCosts(serviceCosts)
}

func (uc *DashboardUseCase) formatBudgetInfo(budgets []entity.BudgetInfo) []string {
	budgetInfo := []string{}
	for _, budget := range budgets {
		budgetInfo = append(budgetInfo, fmt.Sprintf("%s limit: $%.2f", budget.Name, budget.Limit))
		budgetInfo = append(budgetInfo, fmt.Sprintf("%s actual: $%.2f", budget.Name, budget.Actual))
		if budget.Forecast != nil {
			budgetInfo = append(budgetInfo, fmt.Sprintf("%s forecast: $%.2f", budget.Name, *budget.Forecast))
		}
	}
	if len(budgetInfo) == 0 {
		budgetInfo = append(budgetInfo, "No budgets found;\nCreate a budget for this account")
	}
	return budgetInfo
}

// formatEC2Summary renders nonzero instance-state counts in a stable
// order: running first, stopped second, other states alphabetically.
func (uc *DashboardUseCase) formatEC2Summary(ec2Data entity.EC2Summary) []string {
	states := make([]string, 0, len(ec2Data))
	for state, count := range ec2Data {
		if count > 0 {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool {
		rank := func(s string) int {
			switch s {
			case "running":
				return 0
			case "stopped":
				return 1
			default:
				return 2
			}
		}
		if rank(states[i]) != rank(states[j]) {
			return rank(states[i]) < rank(states[j])
		}
		return states[i] < states[j]
	})

	lines := make([]string, 0, len(states))
	for _, state := range states {
		var styled string
		switch state {
		case "running":
			styled = pterm.FgGreen.Sprint(state)
		case "stopped":
			styled = pterm.FgYellow.Sprint(state)
		default:
			styled = pterm.FgCyan.Sprint(state)
		}
		lines = append(lines, fmt.Sprintf("%s: %d", styled, ec2Data[state]))
	}
	if len(lines) == 0 {
		lines = []string{"No instances found"}
	}
	return lines
}

// getDisplayTablePeriodInfo probes the first profile for period names and
// dates so table headers reflect the actual comparison windows.
func (uc *DashboardUseCase) getDisplayTablePeriodInfo(
	ctx context.Context,
	profilesToUse []string,
	timeRange entity.TimeRange,
) (previousName, currentName, previousDates, currentDates string) {
	if len(profilesToUse) > 0 {
		sampleCostData, err := uc.awsRepo.GetCostData(ctx, profilesToUse[0], timeRange, nil)
		if err == nil {
			previousDates = entity.DateWindow{Start: sampleCostData.PreviousPeriodStart, End: sampleCostData.PreviousPeriodEnd}.Label()
			currentDates = entity.DateWindow{Start: sampleCostData.CurrentPeriodStart, End: sampleCostData.CurrentPeriodEnd}.Label()
			return sampleCostData.PreviousPeriodName, sampleCostData.CurrentPeriodName, previousDates, currentDates
		}
	}
	return "Last Month Due", "Current Month Cost", "N/A", "N/A"
}

func (uc *DashboardUseCase) createDisplayTable(
	previousPeriodDates string,
	currentPeriodDates string,
	previousPeriodName string,
	currentPeriodName string,
) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("AWS Account Profile")
	table.AddColumn(fmt.Sprintf("%s\n(%s)", previousPeriodName, previousPeriodDates))
	table.AddColumn(fmt.Sprintf("%s\n(%s)", currentPeriodName, currentPeriodDates))
	table.AddColumn("Cost By Service")
	table.AddColumn("Budget Status")
	table.AddColumn("EC2 Instance Summary")
	return table
}

func (uc *DashboardUseCase) addProfileToTable(table types.TableInterface, profileData entity.ProfileData) {
	if !profileData.Success {
		table.AddRow(
			pterm.FgMagenta.Sprintf("%s", profileData.Profile),
			pterm.FgRed.Sprint("Error"),
			pterm.FgRed.Sprint("Error"),
			pterm.FgRed.Sprintf("Failed to process profile: %s", profileData.Error),
			pterm.FgRed.Sprint("N/A"),
			pterm.FgRed.Sprint("N/A"),
		)
		return
	}

	changeText := ""
	if profileData.PercentChangeInCost != nil {
		change := *profileData.PercentChangeInCost
		switch {
		case change > 0:
			changeText = fmt.Sprintf("\n\n%s", pterm.FgRed.Sprintf("⬆ %.2f%%", change))
		case change < 0:
			changeText = fmt.Sprintf("\n\n%s", pterm.FgGreen.Sprintf("⬇ %.2f%%", math.Abs(change)))
		default:
			changeText = fmt.Sprintf("\n\n%s", pterm.FgYellow.Sprint("➡ 0.00%"))
		}
	}

	table.AddRow(
		pterm.FgMagenta.Sprintf("Profile: %s\nAccount: %s", profileData.Profile, profileData.AccountID),
		pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("$%.2f", profileData.PreviousPeriodCost),
		fmt.Sprintf("%s%s", pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("$%.2f", profileData.CurrentPeriodCost), changeText),
		pterm.FgGreen.Sprintf("%s", strings.Join(profileData.ServiceCostsFormatted, "\n")),
		pterm.FgYellow.Sprintf("%s", strings.Join(profileData.BudgetInfo, "\n\n")),
		strings.Join(profileData.EC2SummaryFormatted, "\n"),
	)
}
