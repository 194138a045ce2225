package repository

import (
	"context"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Profile operations
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)
	GetAccessibleRegions(ctx context.Context, profile string) ([]string, error)

	// Cost operations. GetCostData never fails on a degraded sub-query:
	// it returns a complete CostData with zeros/empties substituted.
	GetCostData(ctx context.Context, profile string, timeRange entity.TimeRange, tags []string) (entity.CostData, error)
	GetTrendData(ctx context.Context, profile string, tags []string) ([]entity.MonthlyCost, string, error)
	GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error)

	// Resource operations
	GetEC2Summary(ctx context.Context, profile string, regions []string) (entity.EC2Summary, error)
	GetStoppedInstances(ctx context.Context, profile string, regions []string) (entity.StoppedEC2Instances, error)
	GetUnusedVolumes(ctx context.Context, profile string, regions []string) (entity.UnusedVolumes, error)
	GetUnusedEIPs(ctx context.Context, profile string, regions []string) (entity.UnusedEIPs, error)
	GetUntaggedResources(ctx context.Context, profile string, regions []string) (entity.UntaggedResources, error)
	GetIdleLoadBalancers(ctx context.Context, profile string, regions []string) (entity.IdleLoadBalancers, error)
}
