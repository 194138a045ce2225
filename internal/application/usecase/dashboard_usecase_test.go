package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
)

type fakeAWSRepo struct {
	profiles    []string
	accountID   string
	accountErr  error
	costData    entity.CostData
	costErr     error
	ec2Summary  entity.EC2Summary
	ec2Err      error
	regions     []string
	trendData   []entity.MonthlyCost
	trendErr    error
	budgets     []entity.BudgetInfo
	budgetsErr  error
	costCalls   int
}

func (f *fakeAWSRepo) GetAWSProfiles() []string { return f.profiles }
func (f *fakeAWSRepo) GetAccountID(ctx context.Context, profile string) (string, error) {
	return f.accountID, f.accountErr
}
func (f *fakeAWSRepo) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	return f.regions, nil
}
func (f *fakeAWSRepo) GetCostData(ctx context.Context, profile string, timeRange entity.TimeRange, tags []string) (entity.CostData, error) {
	f.costCalls++
	return f.costData, f.costErr
}
func (f *fakeAWSRepo) GetTrendData(ctx context.Context, profile string, tags []string) ([]entity.MonthlyCost, string, error) {
	return f.trendData, f.accountID, f.trendErr
}
func (f *fakeAWSRepo) GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error) {
	return f.budgets, f.budgetsErr
}
func (f *fakeAWSRepo) GetEC2Summary(ctx context.Context, profile string, regions []string) (entity.EC2Summary, error) {
	return f.ec2Summary, f.ec2Err
}
func (f *fakeAWSRepo) GetStoppedInstances(ctx context.Context, profile string, regions []string) (entity.StoppedEC2Instances, error) {
	return entity.StoppedEC2Instances{}, nil
}
func (f *fakeAWSRepo) GetUnusedVolumes(ctx context.Context, profile string, regions []string) (entity.UnusedVolumes, error) {
	return entity.UnusedVolumes{}, nil
}
func (f *fakeAWSRepo) GetUnusedEIPs(ctx context.Context, profile string, regions []string) (entity.UnusedEIPs, error) {
	return entity.UnusedEIPs{}, nil
}
func (f *fakeAWSRepo) GetUntaggedResources(ctx context.Context, profile string, regions []string) (entity.UntaggedResources, error) {
	return entity.UntaggedResources{}, nil
}
func (f *fakeAWSRepo) GetIdleLoadBalancers(ctx context.Context, profile string, regions []string) (entity.IdleLoadBalancers, error) {
	return entity.IdleLoadBalancers{}, nil
}

type fakeExportRepo struct {
	csvErr   error
	csvCalls int
	jsonCalls int
}

func (f *fakeExportRepo) ExportToCSV(data []entity.ProfileData, filename, outputDir, prev, curr string) (string, error) {
	f.csvCalls++
	return "/tmp/report.csv", f.csvErr
}
func (f *fakeExportRepo) ExportToJSON(data []entity.ProfileData, filename, outputDir string) (string, error) {
	f.jsonCalls++
	return "/tmp/report.json", nil
}
func (f *fakeExportRepo) ExportToPDF(data []entity.ProfileData, filename, outputDir, prev, curr string) (string, error) {
	return "/tmp/report.pdf", nil
}
func (f *fakeExportRepo) ExportAuditReportToCSV(auditData []entity.AuditData, filename, outputDir string) (string, error) {
	return "/tmp/audit.csv", nil
}
func (f *fakeExportRepo) ExportAuditReportToJSON(auditData []entity.AuditData, filename, outputDir string) (string, error) {
	return "/tmp/audit.json", nil
}

type fakeConfigRepo struct{}

func (f *fakeConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	return &types.Config{}, nil
}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (f *fakeTable) AddColumn(name string)         { f.columns = append(f.columns, name) }
func (f *fakeTable) AddRow(cells ...interface{})   { f.rows = append(f.rows, cells) }
func (f *fakeTable) Render() string                { return "" }

type fakeStatus struct{}

func (fakeStatus) Update(message string) {}
func (fakeStatus) Stop()                 {}

type fakeProgress struct{ increments int }

func (f *fakeProgress) Increment() { f.increments++ }
func (f *fakeProgress) Stop()      {}

type fakeConsole struct {
	warnings []string
	errors   []string
	table    *fakeTable
	progress *fakeProgress
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{table: &fakeTable{}, progress: &fakeProgress{}}
}

func (f *fakeConsole) Print(a ...interface{})                  {}
func (f *fakeConsole) Printf(format string, a ...interface{})  {}
func (f *fakeConsole) Println(a ...interface{})                {}
func (f *fakeConsole) LogInfo(format string, a ...interface{}) {}
func (f *fakeConsole) LogWarning(format string, a ...interface{}) {
	f.warnings = append(f.warnings, format)
}
func (f *fakeConsole) LogError(format string, a ...interface{}) {
	f.errors = append(f.errors, format)
}
func (f *fakeConsole) LogSuccess(format string, a ...interface{})       {}
func (f *fakeConsole) Status(message string) types.StatusHandle         { return fakeStatus{} }
func (f *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle { return f.progress }
func (f *fakeConsole) CreateTable() types.TableInterface                { return f.table }
func (f *fakeConsole) DisplayTrendBars(monthlyCosts []entity.MonthlyCost) {}

func TestInitializeProfiles_ExplicitProfiles(t *testing.T) {
	repo := &fakeAWSRepo{profiles: []string{"default", "dev", "prod"}}
	console := newFakeConsole()
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, console)

	profiles, _, _, err := uc.InitializeProfiles(&types.CLIArgs{Profiles: []string{"dev", "missing"}})
	if err != nil {
		t.Fatalf("InitializeProfiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "dev" {
		t.Errorf("Expected only the valid profile, got %v", profiles)
	}
	if len(console.warnings) != 1 {
		t.Errorf("Expected a warning for the unknown profile, got %v", console.warnings)
	}
}

func TestInitializeProfiles_NoValidProfiles(t *testing.T) {
	repo := &fakeAWSRepo{profiles: []string{"default"}}
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, newFakeConsole())

	_, _, _, err := uc.InitializeProfiles(&types.CLIArgs{Profiles: []string{"missing"}})
	if !errors.Is(err, types.ErrNoValidProfilesFound) {
		t.Errorf("Expected ErrNoValidProfilesFound, got %v", err)
	}
}

func TestInitializeProfiles_DefaultFallback(t *testing.T) {
	repo := &fakeAWSRepo{profiles: []string{"default", "dev"}}
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, newFakeConsole())

	profiles, _, _, err := uc.InitializeProfiles(&types.CLIArgs{})
	if err != nil {
		t.Fatalf("InitializeProfiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "default" {
		t.Errorf("Expected the default profile, got %v", profiles)
	}

	profiles, _, _, err = uc.InitializeProfiles(&types.CLIArgs{All: true})
	if err != nil {
		t.Fatalf("InitializeProfiles failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("Expected all profiles, got %v", profiles)
	}
}

func TestProcessSingleProfileWithProgress_Success(t *testing.T) {
	repo := &fakeAWSRepo{
		accountID: "123456789012",
		regions:   []string{"us-east-1"},
		costData: entity.CostData{
			AccountID:          "123456789012",
			PreviousPeriodCost: 100.0,
			CurrentPeriodCost:  150.0,
			CostByService: []entity.ServiceCost{
				{ServiceName: "AWS Lambda", Cost: 150.0},
				{ServiceName: "Amazon CloudWatch", Cost: 0.0005},
			},
			CurrentPeriodName:  "Current month's cost",
			PreviousPeriodName: "Last month's cost",
		},
		ec2Summary: entity.EC2Summary{"running": 2, "stopped": 0},
	}
	console := newFakeConsole()
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, console)

	data := uc.ProcessSingleProfileWithProgress(context.Background(), "dev", nil, entity.DefaultTimeRange(), nil, console.progress, fakeStatus{})

	if !data.Success {
		t.Fatalf("Expected success, got error %q", data.Error)
	}
	if len(data.ServiceCosts) != 1 {
		t.Errorf("Sub-cent costs should be filtered from display, got %+v", data.ServiceCosts)
	}
	if data.PercentChangeInCost == nil || *data.PercentChangeInCost != 50.0 {
		t.Errorf("Expected a 50%% change, got %+v", data.PercentChangeInCost)
	}
	if console.progress.increments != 5 {
		t.Errorf("Expected five progress steps, got %d", console.progress.increments)
	}
	if len(data.EC2SummaryFormatted) != 1 {
		t.Errorf("Zero-count states should not be displayed, got %v", data.EC2SummaryFormatted)
	}
}

func TestProcessSingleProfileWithProgress_CostFailure(t *testing.T) {
	repo := &fakeAWSRepo{
		accountID: "123456789012",
		costErr:   errors.New("expired credentials"),
	}
	console := newFakeConsole()
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, console)

	data := uc.ProcessSingleProfileWithProgress(context.Background(), "dev", nil, entity.DefaultTimeRange(), nil, console.progress, fakeStatus{})

	if data.Success {
		t.Error("Expected a failed profile row")
	}
	if data.Error == "" {
		t.Error("Expected the error to be recorded on the row")
	}
	if console.progress.increments != 5 {
		t.Errorf("Progress must still complete all steps on failure, got %d", console.progress.increments)
	}
}

func TestRunDashboard_ExportFailureDoesNotAbort(t *testing.T) {
	repo := &fakeAWSRepo{
		profiles:   []string{"default"},
		accountID:  "123456789012",
		regions:    []string{"us-east-1"},
		costData:   entity.CostData{AccountID: "123456789012"},
		ec2Summary: entity.EC2Summary{},
	}
	exportRepo := &fakeExportRepo{csvErr: errors.New("disk full")}
	console := newFakeConsole()
	uc := NewDashboardUseCase(repo, exportRepo, &fakeConfigRepo{}, console)

	err := uc.RunDashboard(context.Background(), &types.CLIArgs{
		ReportName: "report",
		ReportType: []string{"csv", "json"},
	})
	if err != nil {
		t.Fatalf("RunDashboard must not fail on a broken export: %v", err)
	}
	if exportRepo.csvCalls != 1 || exportRepo.jsonCalls != 1 {
		t.Errorf("All requested exports must be attempted, got csv=%d json=%d", exportRepo.csvCalls, exportRepo.jsonCalls)
	}
	if len(console.errors) != 1 {
		t.Errorf("Expected one export error to be logged, got %v", console.errors)
	}
}

func TestFormatBudgetInfo(t *testing.T) {
	uc := NewDashboardUseCase(&fakeAWSRepo{}, &fakeExportRepo{}, &fakeConfigRepo{}, newFakeConsole())

	lines := uc.formatBudgetInfo(nil)
	if len(lines) != 1 || lines[0] != "No budgets found;\nCreate a budget for this account" {
		t.Errorf("Unexpected placeholder: %v", lines)
	}

	forecast := 210.0
	lines = uc.formatBudgetInfo([]entity.BudgetInfo{
		{Name: "monthly", Limit: 500, Actual: 100.5, Forecast: &forecast},
		{Name: "yearly", Limit: 6000, Actual: 1200},
	})
	if len(lines) != 5 {
		t.Fatalf("Expected 3 lines for the forecasted budget and 2 for the other, got %v", lines)
	}
	if lines[2] != "monthly forecast: $210.00" {
		t.Errorf("Unexpected forecast line: %q", lines[2])
	}
}

func TestPercentChange(t *testing.T) {
	if got := percentChange(100, 150); got == nil || *got != 50.0 {
		t.Errorf("percentChange(100, 150) = %v, want 50", got)
	}
	if got := percentChange(0, 0); got == nil || *got != 0.0 {
		t.Errorf("percentChange(0, 0) = %v, want 0", got)
	}
	if got := percentChange(0, 100); got != nil {
		t.Errorf("percentChange(0, 100) = %v, want nil", got)
	}
}

func TestRunAuditReport_TableHasIdleLoadBalancerColumn(t *testing.T) {
	repo := &fakeAWSRepo{
		profiles:  []string{"default"},
		accountID: "123456789012",
		regions:   []string{"us-east-1"},
	}
	console := newFakeConsole()
	uc := NewDashboardUseCase(repo, &fakeExportRepo{}, &fakeConfigRepo{}, console)

	auditData, err := uc.RunAuditReport(context.Background(), []string{"default"}, &types.CLIArgs{})
	if err != nil {
		t.Fatalf("RunAuditReport failed: %v", err)
	}
	if len(auditData) != 1 {
		t.Fatalf("Expected one audit row, got %d", len(auditData))
	}
	if auditData[0].IdleLoadBalancers != "None" {
		t.Errorf("Expected 'None' for no findings, got %q", auditData[0].IdleLoadBalancers)
	}

	found := false
	for _, col := range console.table.columns {
		if col == "Idle Load Balancers" {
			found = true
		}
	}
	if !found {
		t.Errorf("Audit table missing Idle Load Balancers column: %v", console.table.columns)
	}
}
