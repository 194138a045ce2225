package aws

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetsTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/application/costs"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

const ceDateLayout = "2006-01-02"

// costExplorerAPI is the slice of the Cost Explorer client used by the
// cost fetcher.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// budgetsAPI is the slice of the Budgets client used by the cost fetcher.
type budgetsAPI interface {
	DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
}

// GetCostData assembles the cost report for a profile. The four
// sub-queries (current total, previous total, service breakdown, budgets)
// degrade independently: a failed query logs a warning and leaves its
// zero value in place, so one broken API never blanks the whole report.
func (r *AWSRepositoryImpl) GetCostData(ctx context.Context, profile string, timeRange entity.TimeRange, tags []string) (entity.CostData, error) {
	ceClient, err := r.costExplorerClient(ctx, profile)
	if err != nil {
		return entity.CostData{}, err
	}
	budgetsClient, err := r.budgetsClient(ctx, profile)
	if err != nil {
		return entity.CostData{}, err
	}

	filter, err := parseTagFilter(tags)
	if err != nil {
		return entity.CostData{}, err
	}

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		r.console.LogWarning("Could not resolve account ID for profile %s: %v", profile, err)
		accountID = ""
	}

	return r.fetchCostData(ctx, ceClient, budgetsClient, profile, accountID, timeRange, filter, time.Now().UTC()), nil
}

func (r *AWSRepositoryImpl) fetchCostData(ctx context.Context, ce costExplorerAPI, bud budgetsAPI, profile, accountID string, timeRange entity.TimeRange, filter *ceTypes.Expression, today time.Time) entity.CostData {
	current, previous := costs.ComparisonWindows(today, timeRange)
	currentName, previousName := costs.PeriodNames(timeRange)

	data := entity.CostData{
		AccountID:           accountID,
		CostByService:       []entity.ServiceCost{},
		Budgets:             []entity.BudgetInfo{},
		CurrentPeriodName:   currentName,
		PreviousPeriodName:  previousName,
		CurrentPeriodStart:  current.Start,
		CurrentPeriodEnd:    current.End,
		PreviousPeriodStart: previous.Start,
		PreviousPeriodEnd:   previous.End,
	}
	if timeRange.IsCustom() {
		data.TimeRangeDays = timeRange.Days()
	}

	// Each goroutine writes a distinct field of data; no lock needed.
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		total, err := getPeriodTotal(ctx, ce, current, filter)
		if err != nil {
			r.console.LogWarning("Could not get current period cost for profile %s: %v", profile, err)
			return
		}
		data.CurrentPeriodCost = total
	}()

	go func() {
		defer wg.Done()
		total, err := getPeriodTotal(ctx, ce, previous, filter)
		if err != nil {
			r.console.LogWarning("Could not get previous period cost for profile %s: %v", profile, err)
			return
		}
		data.PreviousPeriodCost = total
	}()

	go func() {
		defer wg.Done()
		raw, err := getServiceBreakdown(ctx, ce, current, timeRange, filter)
		if err != nil {
			r.console.LogWarning("Could not get service breakdown for profile %s: %v", profile, err)
			return
		}
		data.CostByService = costs.AggregateServiceCosts(raw)
	}()

	go func() {
		defer wg.Done()
		budgetInfo, err := getBudgets(ctx, bud, accountID)
		if err != nil {
			r.console.LogWarning("Could not get budgets for profile %s: %v", profile, err)
			return
		}
		data.Budgets = budgetInfo
	}()

	wg.Wait()
	return data
}

// getPeriodTotal sums unblended cost over a date window. Cost Explorer may
// split the window into multiple result buckets; all of them count.
func getPeriodTotal(ctx context.Context, ce costExplorerAPI, window entity.DateWindow, filter *ceTypes.Expression) (float64, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(ceDateLayout)),
			End:   aws.String(window.End.Format(ceDateLayout)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		Filter:      filter,
	}

	output, err := ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, result := range output.ResultsByTime {
		metric, ok := result.Total["UnblendedCost"]
		if !ok || metric.Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			continue
		}
		total += amount
	}
	return total, nil
}

// getServiceBreakdown queries per-service cost for the window. Rolling
// ranges use DAILY granularity so partial days at the edges are captured;
// the caller aggregates duplicates across buckets.
func getServiceBreakdown(ctx context.Context, ce costExplorerAPI, window entity.DateWindow, timeRange entity.TimeRange, filter *ceTypes.Expression) ([]costs.RawServiceCost, error) {
	granularity := ceTypes.GranularityMonthly
	if timeRange.IsCustom() {
		granularity = ceTypes.GranularityDaily
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(ceDateLayout)),
			End:   aws.String(window.End.Format(ceDateLayout)),
		},
		Granularity: granularity,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
		Filter: filter,
	}

	output, err := ce.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}

	var raw []costs.RawServiceCost
	for _, result := range output.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}
			raw = append(raw, costs.RawServiceCost{
				Service: group.Keys[0],
				Amount:  aws.ToString(metric.Amount),
			})
		}
	}
	return raw, nil
}

func getBudgets(ctx context.Context, bud budgetsAPI, accountID string) ([]entity.BudgetInfo, error) {
	output, err := bud.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, err
	}

	budgetInfo := make([]entity.BudgetInfo, 0, len(output.Budgets))
	for _, b := range output.Budgets {
		info := entity.BudgetInfo{Name: aws.ToString(b.BudgetName)}
		if b.BudgetLimit != nil {
			info.Limit = parseBudgetAmount(b.BudgetLimit)
		}
		if b.CalculatedSpend != nil {
			if b.CalculatedSpend.ActualSpend != nil {
				info.Actual = parseBudgetAmount(b.CalculatedSpend.ActualSpend)
			}
			if b.CalculatedSpend.ForecastedSpend != nil {
				forecast := parseBudgetAmount(b.CalculatedSpend.ForecastedSpend)
				info.Forecast = &forecast
			}
		}
		budgetInfo = append(budgetInfo, info)
	}
	return budgetInfo, nil
}

func parseBudgetAmount(spend *budgetsTypes.Spend) float64 {
	if spend == nil || spend.Amount == nil {
		return 0
	}
	amount, err := strconv.ParseFloat(aws.ToString(spend.Amount), 64)
	if err != nil {
		return 0
	}
	return amount
}

// parseTagFilter builds a Cost Explorer filter from "Key=Value" pairs.
// Multiple values for the same key OR together; distinct keys AND together.
func parseTagFilter(tags []string) (*ceTypes.Expression, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	valuesByKey := make(map[string][]string)
	var keyOrder []string
	for _, tag := range tags {
		key, value, found := strings.Cut(tag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid tag filter %q, expected Key=Value", tag)
		}
		if _, seen := valuesByKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		valuesByKey[key] = append(valuesByKey[key], value)
	}

	expressions := make([]ceTypes.Expression, 0, len(keyOrder))
	for _, key := range keyOrder {
		expressions = append(expressions, ceTypes.Expression{
			Tags: &ceTypes.TagValues{
				Key:    aws.String(key),
				Values: valuesByKey[key],
			},
		})
	}

	if len(expressions) == 1 {
		return &expressions[0], nil
	}
	return &ceTypes.Expression{And: expressions}, nil
}

// GetBudgets returns the budgets configured for the profile's account.
func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error) {
	client, err := r.budgetsClient(ctx, profile)
	if err != nil {
		return nil, err
	}
	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		return nil, err
	}
	return getBudgets(ctx, client, accountID)
}

// GetTrendData returns up to six months of historical monthly cost plus
// the resolved account ID.
func (r *AWSRepositoryImpl) GetTrendData(ctx context.Context, profile string, tags []string) ([]entity.MonthlyCost, string, error) {
	ceClient, err := r.costExplorerClient(ctx, profile)
	if err != nil {
		return nil, "", err
	}

	filter, err := parseTagFilter(tags)
	if err != nil {
		return nil, "", err
	}

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		r.console.LogWarning("Could not resolve account ID for profile %s: %v", profile, err)
		accountID = ""
	}

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	start := end.AddDate(0, -6, 0)

	output, err := ceClient.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format(ceDateLayout)),
			End:   aws.String(end.Format(ceDateLayout)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		Filter:      filter,
	})
	if err != nil {
		return nil, accountID, fmt.Errorf("error getting trend data for profile %s: %w", profile, err)
	}

	monthly := make([]entity.MonthlyCost, 0, len(output.ResultsByTime))
	for _, result := range output.ResultsByTime {
		if result.TimePeriod == nil || result.TimePeriod.Start == nil {
			continue
		}
		metric, ok := result.Total["UnblendedCost"]
		if !ok || metric.Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			continue
		}
		monthStart, err := time.Parse(ceDateLayout, aws.ToString(result.TimePeriod.Start))
		if err != nil {
			continue
		}
		monthly = append(monthly, entity.MonthlyCost{
			Month: monthStart.Format("Jan 2006"),
			Cost:  amount,
		})
	}
	return monthly, accountID, nil
}
