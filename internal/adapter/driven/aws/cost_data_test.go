package aws

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetsTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
)

// fakeCostExplorer routes GetCostAndUsage calls by whether the request
// groups by service, so totals and breakdowns can fail independently.
type fakeCostExplorer struct {
	totalOutput     *costexplorer.GetCostAndUsageOutput
	totalErr        error
	breakdownOutput *costexplorer.GetCostAndUsageOutput
	breakdownErr    error
}

func (f *fakeCostExplorer) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	if len(params.GroupBy) > 0 {
		return f.breakdownOutput, f.breakdownErr
	}
	return f.totalOutput, f.totalErr
}

type fakeBudgets struct {
	output *budgets.DescribeBudgetsOutput
	err    error
}

func (f *fakeBudgets) DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error) {
	return f.output, f.err
}

// nullConsole satisfies the warning surface without producing output.
type nullConsole struct{}

func (nullConsole) Print(a ...interface{})                             {}
func (nullConsole) Printf(format string, a ...interface{})             {}
func (nullConsole) Println(a ...interface{})                           {}
func (nullConsole) LogInfo(format string, a ...interface{})            {}
func (nullConsole) LogWarning(format string, a ...interface{})         {}
func (nullConsole) LogError(format string, a ...interface{})           {}
func (nullConsole) LogSuccess(format string, a ...interface{})         {}
func (nullConsole) Status(message string) types.StatusHandle           { return nil }
func (nullConsole) ProgressWithTotal(total int) types.ProgressHandle   { return nil }
func (nullConsole) CreateTable() types.TableInterface                  { return nil }
func (nullConsole) DisplayTrendBars(monthlyCosts []entity.MonthlyCost) {}

func totalOutput(amounts ...string) *costexplorer.GetCostAndUsageOutput {
	results := make([]ceTypes.ResultByTime, 0, len(amounts))
	for _, amount := range amounts {
		results = append(results, ceTypes.ResultByTime{
			Total: map[string]ceTypes.MetricValue{
				"UnblendedCost": {Amount: aws.String(amount)},
			},
		})
	}
	return &costexplorer.GetCostAndUsageOutput{ResultsByTime: results}
}

func breakdownOutput(buckets ...map[string]string) *costexplorer.GetCostAndUsageOutput {
	results := make([]ceTypes.ResultByTime, 0, len(buckets))
	for _, bucket := range buckets {
		var groups []ceTypes.Group
		for service, amount := range bucket {
			groups = append(groups, ceTypes.Group{
				Keys: []string{service},
				Metrics: map[string]ceTypes.MetricValue{
					"UnblendedCost": {Amount: aws.String(amount)},
				},
			})
		}
		results = append(results, ceTypes.ResultByTime{Groups: groups})
	}
	return &costexplorer.GetCostAndUsageOutput{ResultsByTime: results}
}

func newTestRepository() *AWSRepositoryImpl {
	return &AWSRepositoryImpl{console: nullConsole{}, cfgCache: map[string]aws.Config{}}
}

func TestFetchCostData_AllQueriesSucceed(t *testing.T) {
	ce := &fakeCostExplorer{
		totalOutput: totalOutput("100.50"),
		breakdownOutput: breakdownOutput(map[string]string{
			"AWS Lambda":                    "60.50",
			"Amazon Simple Storage Service": "40.00",
		}),
	}
	bud := &fakeBudgets{output: &budgets.DescribeBudgetsOutput{
		Budgets: []budgetsTypes.Budget{{
			BudgetName:  aws.String("monthly"),
			BudgetLimit: &budgetsTypes.Spend{Amount: aws.String("500")},
			CalculatedSpend: &budgetsTypes.CalculatedSpend{
				ActualSpend:     &budgetsTypes.Spend{Amount: aws.String("100.50")},
				ForecastedSpend: &budgetsTypes.Spend{Amount: aws.String("210")},
			},
		}},
	}}

	r := newTestRepository()
	data := r.fetchCostData(context.Background(), ce, bud, "dev", "123456789012", entity.DefaultTimeRange(), nil, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	if math.Abs(data.CurrentPeriodCost-100.50) > 1e-9 {
		t.Errorf("CurrentPeriodCost = %f, want 100.50", data.CurrentPeriodCost)
	}
	if len(data.CostByService) != 2 || data.CostByService[0].ServiceName != "AWS Lambda" {
		t.Errorf("Unexpected service breakdown: %+v", data.CostByService)
	}
	if len(data.Budgets) != 1 || data.Budgets[0].Forecast == nil || *data.Budgets[0].Forecast != 210 {
		t.Errorf("Unexpected budgets: %+v", data.Budgets)
	}
	if data.CurrentPeriodName != "Current month's cost" {
		t.Errorf("CurrentPeriodName = %q", data.CurrentPeriodName)
	}
}

func TestFetchCostData_BreakdownFailureDegradesToEmpty(t *testing.T) {
	ce := &fakeCostExplorer{
		totalOutput:  totalOutput("100.50"),
		breakdownErr: errors.New("AccessDeniedException"),
	}
	bud := &fakeBudgets{output: &budgets.DescribeBudgetsOutput{}}

	r := newTestRepository()
	data := r.fetchCostData(context.Background(), ce, bud, "dev", "123456789012", entity.DefaultTimeRange(), nil, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	if math.Abs(data.CurrentPeriodCost-100.50) > 1e-9 {
		t.Errorf("Totals must survive a breakdown failure, got %f", data.CurrentPeriodCost)
	}
	if data.CostByService == nil || len(data.CostByService) != 0 {
		t.Errorf("Breakdown must degrade to an empty slice, got %+v", data.CostByService)
	}
}

func TestFetchCostData_TotalFailureDegradesToZero(t *testing.T) {
	ce := &fakeCostExplorer{
		totalErr:        errors.New("ThrottlingException"),
		breakdownOutput: breakdownOutput(map[string]string{"AWS Lambda": "2.00"}),
	}
	bud := &fakeBudgets{err: errors.New("AccessDeniedException")}

	r := newTestRepository()
	data := r.fetchCostData(context.Background(), ce, bud, "dev", "123456789012", entity.DefaultTimeRange(), nil, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	if data.CurrentPeriodCost != 0 || data.PreviousPeriodCost != 0 {
		t.Errorf("Totals must degrade to zero, got %f / %f", data.CurrentPeriodCost, data.PreviousPeriodCost)
	}
	if len(data.CostByService) != 1 {
		t.Errorf("Breakdown must survive total failures, got %+v", data.CostByService)
	}
	if data.Budgets == nil || len(data.Budgets) != 0 {
		t.Errorf("Budgets must degrade to an empty slice, got %+v", data.Budgets)
	}
}

func TestFetchCostData_SumsAcrossDailyBuckets(t *testing.T) {
	ce := &fakeCostExplorer{
		totalOutput: totalOutput("1.00", "2.00", "3.00"),
		breakdownOutput: breakdownOutput(
			map[string]string{"AWS Lambda": "1.00"},
			map[string]string{"AWS Lambda": "2.00"},
			map[string]string{"AWS Lambda": "3.00"},
		),
	}
	bud := &fakeBudgets{output: &budgets.DescribeBudgetsOutput{}}

	r := newTestRepository()
	data := r.fetchCostData(context.Background(), ce, bud, "dev", "123456789012", entity.LastNDays(7), nil, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	if math.Abs(data.CurrentPeriodCost-6.0) > 1e-9 {
		t.Errorf("Total must sum across buckets, got %f", data.CurrentPeriodCost)
	}
	if len(data.CostByService) != 1 || math.Abs(data.CostByService[0].Cost-6.0) > 1e-9 {
		t.Errorf("Breakdown must aggregate duplicates across buckets, got %+v", data.CostByService)
	}
	if data.TimeRangeDays != 7 {
		t.Errorf("TimeRangeDays = %d, want 7", data.TimeRangeDays)
	}
	if data.CurrentPeriodName != "Current 7 days cost" {
		t.Errorf("CurrentPeriodName = %q", data.CurrentPeriodName)
	}
}

func TestParseTagFilter(t *testing.T) {
	filter, err := parseTagFilter(nil)
	if err != nil || filter != nil {
		t.Errorf("Empty tags should produce a nil filter, got %v, %v", filter, err)
	}

	filter, err = parseTagFilter([]string{"Team=backend"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filter.Tags == nil || aws.ToString(filter.Tags.Key) != "Team" || len(filter.Tags.Values) != 1 {
		t.Errorf("Unexpected single-tag filter: %+v", filter)
	}

	filter, err = parseTagFilter([]string{"Team=backend", "Team=data", "Env=prod"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(filter.And) != 2 {
		t.Fatalf("Expected two ANDed expressions, got %+v", filter)
	}
	if len(filter.And[0].Tags.Values) != 2 {
		t.Errorf("Values for the same key must OR together, got %+v", filter.And[0].Tags)
	}

	if _, err := parseTagFilter([]string{"missing-separator"}); err == nil {
		t.Error("Expected an error for a tag without Key=Value form")
	}
}
