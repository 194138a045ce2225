package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/repository"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/shared/types"
)

// AWSRepositoryImpl implements AWSRepository on aws-sdk-go-v2 with a
// per-profile config cache. Service clients are created on demand from the
// cached config; Cost Explorer and Budgets are always pinned to us-east-1.
type AWSRepositoryImpl struct {
	console  types.ConsoleInterface
	cfgCache map[string]aws.Config
	mu       sync.Mutex
}

// NewAWSRepository creates a new AWSRepository. The console is used to
// surface warnings for sub-queries that degrade instead of failing.
func NewAWSRepository(console types.ConsoleInterface) repository.AWSRepository {
	return &AWSRepositoryImpl{
		console:  console,
		cfgCache: make(map[string]aws.Config),
	}
}

func (r *AWSRepositoryImpl) awsConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	r.mu.Lock()
	cfg, ok := r.cfgCache[profile]
	r.mu.Unlock()

	if !ok {
		loaded, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
		}
		r.mu.Lock()
		r.cfgCache[profile] = loaded
		r.mu.Unlock()
		cfg = loaded
	}

	regional := cfg.Copy()
	if region != "" {
		regional.Region = region
	}
	return regional, nil
}

func (r *AWSRepositoryImpl) ec2Client(ctx context.Context, profile, region string) (*ec2.Client, error) {
	cfg, err := r.awsConfig(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return ec2.NewFromConfig(cfg), nil
}

func (r *AWSRepositoryImpl) costExplorerClient(ctx context.Context, profile string) (*costexplorer.Client, error) {
	cfg, err := r.awsConfig(ctx, profile, "us-east-1")
	if err != nil {
		return nil, err
	}
	return costexplorer.NewFromConfig(cfg), nil
}

func (r *AWSRepositoryImpl) budgetsClient(ctx context.Context, profile string) (*budgets.Client, error) {
	cfg, err := r.awsConfig(ctx, profile, "us-east-1")
	if err != nil {
		return nil, err
	}
	return budgets.NewFromConfig(cfg), nil
}

var profileHeaderRegex = regexp.MustCompile(`\[([^]]+)\]`)

// GetAWSProfiles lists profile names from the shared AWS credentials and
// config files, falling back to "default" when none are found.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}

	profiles := make(map[string]bool)
	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		for _, match := range profileHeaderRegex.FindAllStringSubmatch(string(content), -1) {
			name := match[1]
			if isConfig {
				name = strings.TrimPrefix(name, "profile ")
			}
			profiles[name] = true
		}
	}
	parseFile(filepath.Join(homeDir, ".aws", "credentials"), false)
	parseFile(filepath.Join(homeDir, ".aws", "config"), true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

// GetAccountID resolves the AWS account ID behind a profile via STS.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	cfg, err := r.awsConfig(ctx, profile, "us-east-1")
	if err != nil {
		return "", err
	}
	stsClient := sts.NewFromConfig(cfg)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %s: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetAccessibleRegions lists the regions enabled for the account. On
// failure a conservative default set is returned so region-scoped scans
// can still run.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	defaultRegions := []string{"us-east-1", "us-east-2", "us-west-1", "us-west-2", "eu-west-1", "eu-central-1"}

	client, err := r.ec2Client(ctx, profile, "us-east-1")
	if err != nil {
		return defaultRegions, fmt.Errorf("could not create EC2 client to list regions: %w", err)
	}

	output, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return defaultRegions, nil
	}

	regions := make([]string, 0, len(output.Regions))
	for _, region := range output.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	return regions, nil
}

// GetEC2Summary counts EC2 instances per state across the given regions.
// Regions are scanned in parallel; running and stopped keys are always
// present in the result.
func (r *AWSRepositoryImpl) GetEC2Summary(ctx context.Context, profile string, regions []string) (entity.EC2Summary, error) {
	summary := make(entity.EC2Summary)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, region := range regions {
		wg.Add(1)
		go func(rgn string) {
			defer wg.Done()
			client, err := r.ec2Client(ctx, profile, rgn)
			if err != nil {
				return
			}

			paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
			for paginator.HasMorePages() {
				output, err := paginator.NextPage(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				for _, reservation := range output.Reservations {
					for _, instance := range reservation.Instances {
						if instance.State != nil {
							summary[string(instance.State.Name)]++
						}
					}
				}
				mu.Unlock()
			}
		}(region)
	}
	wg.Wait()

	if _, ok := summary["running"]; !ok {
		summary["running"] = 0
	}
	if _, ok := summary["stopped"]; !ok {
		summary["stopped"] = 0
	}

	return summary, nil
}

// GetStoppedInstances lists stopped EC2 instance IDs grouped by region.
func (r *AWSRepositoryImpl) GetStoppedInstances(ctx context.Context, profile string, regions []string) (entity.StoppedEC2Instances, error) {
	stopped := make(entity.StoppedEC2Instances)
	var mu sync.Mutex
	r.forEachRegion(ctx, profile, regions, func(rgn string, client *ec2.Client) {
		result, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters: []ec2Types.Filter{{Name: aws.String("instance-state-name"), Values: []string{"stopped"}}},
		})
		if err != nil {
			return
		}

		var instanceIDs []string
		for _, res := range result.Reservations {
			for _, inst := range res.Instances {
				instanceIDs = append(instanceIDs, aws.ToString(inst.InstanceId))
			}
		}
		if len(instanceIDs) > 0 {
			mu.Lock()
			stopped[rgn] = instanceIDs
			mu.Unlock()
		}
	})
	return stopped, nil
}

// GetUnusedVolumes lists EBS volumes in the "available" state by region.
func (r *AWSRepositoryImpl) GetUnusedVolumes(ctx context.Context, profile string, regions []string) (entity.UnusedVolumes, error) {
	unused := make(entity.UnusedVolumes)
	var mu sync.Mutex
	r.forEachRegion(ctx, profile, regions, func(rgn string, client *ec2.Client) {
		result, err := client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			Filters: []ec2Types.Filter{{Name: aws.String("status"), Values: []string{"available"}}},
		})
		if err != nil {
			return
		}

		var volumeIDs []string
		for _, vol := range result.Volumes {
			volumeIDs = append(volumeIDs, aws.ToString(vol.VolumeId))
		}
		if len(volumeIDs) > 0 {
			mu.Lock()
			unused[rgn] = volumeIDs
			mu.Unlock()
		}
	})
	return unused, nil
}

// GetUnusedEIPs lists Elastic IPs without an association by region.
func (r *AWSRepositoryImpl) GetUnusedEIPs(ctx context.Context, profile string, regions []string) (entity.UnusedEIPs, error) {
	eips := make(entity.UnusedEIPs)
	var mu sync.Mutex
	r.forEachRegion(ctx, profile, regions, func(rgn string, client *ec2.Client) {
		result, err := client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
		if err != nil {
			return
		}

		var freeIPs []string
		for _, addr := range result.Addresses {
			if addr.AssociationId == nil {
				freeIPs = append(freeIPs, aws.ToString(addr.PublicIp))
			}
		}
		if len(freeIPs) > 0 {
			mu.Lock()
			eips[rgn] = freeIPs
			mu.Unlock()
		}
	})
	return eips, nil
}

// forEachRegion runs fn once per region in parallel with a region-scoped
// EC2 client. fn must synchronize its own writes to shared state.
func (r *AWSRepositoryImpl) forEachRegion(ctx context.Context, profile string, regions []string, fn func(region string, client *ec2.Client)) {
	var wg sync.WaitGroup
	for _, region := range regions {
		wg.Add(1)
		go func(rgn string) {
			defer wg.Done()
			client, err := r.ec2Client(ctx, profile, rgn)
			if err != nil {
				return
			}
			fn(rgn, client)
		}(region)
	}
	wg.Wait()
}

// GetUntaggedResources scans EC2 instances, RDS instances and Lambda
// functions for resources with no tags at all, grouped by service and
// region. Per-region failures are skipped.
func (r *AWSRepositoryImpl) GetUntaggedResources(ctx context.Context, profile string, regions []string) (entity.UntaggedResources, error) {
	untagged := entity.UntaggedResources{
		"EC2":    make(map[string][]string),
		"RDS":    make(map[string][]string),
		"Lambda": make(map[string][]string),
	}
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, region := range regions {
		wg.Add(1)
		go func(rgn string) {
			defer wg.Done()

			cfg, err := r.awsConfig(ctx, profile, rgn)
			if err != nil {
				return
			}

			if insts, err := ec2.NewFromConfig(cfg).DescribeInstances(ctx, &ec2.DescribeInstancesInput{}); err == nil {
				var ids []string
				for _, res := range insts.Reservations {
					for _, inst := range res.Instances {
						if len(inst.Tags) == 0 {
							ids = append(ids, aws.ToString(inst.InstanceId))
						}
					}
				}
				if len(ids) > 0 {
					mu.Lock()
					untagged["EC2"][rgn] = ids
					mu.Unlock()
				}
			}

			if dbs, err := rds.NewFromConfig(cfg).DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{}); err == nil {
				var ids []string
				for _, db := range dbs.DBInstances {
					if len(db.TagList) == 0 {
						ids = append(ids, aws.ToString(db.DBInstanceIdentifier))
					}
				}
				if len(ids) > 0 {
					mu.Lock()
					untagged["RDS"][rgn] = ids
					mu.Unlock()
				}
			}

			lambdaClient := lambda.NewFromConfig(cfg)
			if funcs, err := lambdaClient.ListFunctions(ctx, &lambda.ListFunctionsInput{}); err == nil {
				var names []string
				for _, fn := range funcs.Functions {
					tags, err := lambdaClient.ListTags(ctx, &lambda.ListTagsInput{Resource: fn.FunctionArn})
					if err == nil && len(tags.Tags) == 0 {
						names = append(names, aws.ToString(fn.FunctionName))
					}
				}
				if len(names) > 0 {
					mu.Lock()
					untagged["Lambda"][rgn] = names
					mu.Unlock()
				}
			}
		}(region)
	}
	wg.Wait()
	return untagged, nil
}

// GetIdleLoadBalancers lists ELBv2 load balancers whose target groups have
// no registered targets, grouped by region.
func (r *AWSRepositoryImpl) GetIdleLoadBalancers(ctx context.Context, profile string, regions []string) (entity.IdleLoadBalancers, error) {
	idle := make(entity.IdleLoadBalancers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, region := range regions {
		wg.Add(1)
		go func(rgn string) {
			defer wg.Done()

			cfg, err := r.awsConfig(ctx, profile, rgn)
			if err != nil {
				return
			}
			client := elasticloadbalancingv2.NewFromConfig(cfg)

			lbs, err := client.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
			if err != nil {
				return
			}

			var regionIdle []string
			for _, lb := range lbs.LoadBalancers {
				tgs, err := client.DescribeTargetGroups(ctx, &elasticloadbalancingv2.DescribeTargetGroupsInput{
					LoadBalancerArn: lb.LoadBalancerArn,
				})
				if err != nil || len(tgs.TargetGroups) == 0 {
					regionIdle = append(regionIdle, aws.ToString(lb.LoadBalancerName))
					continue
				}

				hasTargets := false
				for _, tg := range tgs.TargetGroups {
					health, err := client.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
						TargetGroupArn: tg.TargetGroupArn,
					})
					if err != nil {
						continue
					}
					if len(health.TargetHealthDescriptions) > 0 {
						hasTargets = true
						break
					}
				}
				if !hasTargets {
					regionIdle = append(regionIdle, aws.ToString(lb.LoadBalancerName))
				}
			}

			if len(regionIdle) > 0 {
				mu.Lock()
				idle[rgn] = regionIdle
				mu.Unlock()
			}
		}(region)
	}
	wg.Wait()
	return idle, nil
}
