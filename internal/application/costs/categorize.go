package costs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

// CategoryOther is the bucket for services no table entry matches.
const CategoryOther = "Other"

type serviceCategory struct {
	service  string
	category string
}

// serviceCategories maps known service names to spend categories. The
// table is an ordered slice, not a map: the substring fallback scans it in
// definition order, so an input matching two entries always resolves to
// the first-defined one. Report output depends on that order; keep it
// stable when adding entries.
var serviceCategories = []serviceCategory{
	// Compute
	{"Amazon Elastic Compute Cloud", "Compute"},
	{"EC2 - Other", "Compute"},
	{"Amazon Elastic Container Service", "Compute"},
	{"Amazon EKS", "Compute"},
	{"AWS Lambda", "Compute"},
	{"Amazon Elastic Container Registry", "Compute"},
	{"AWS Fargate", "Compute"},
	{"Amazon Lightsail", "Compute"},
	{"EC2 Container Registry", "Compute"},
	{"Amazon Elastic Kubernetes Service", "Compute"},
	{"Amazon EC2 Container Service", "Compute"},

	// Storage
	{"Amazon Simple Storage Service", "Storage"},
	{"Amazon Elastic Block Store", "Storage"},
	{"Amazon Elastic File System", "Storage"},
	{"Amazon FSx", "Storage"},
	{"Amazon S3 Glacier", "Storage"},
	{"Storage Gateway", "Storage"},
	{"AWS Backup", "Storage"},

	// Database
	{"Amazon Relational Database Service", "Database"},
	{"Amazon DynamoDB", "Database"},
	{"Amazon ElastiCache", "Database"},
	{"Amazon Redshift", "Database"},
	{"Amazon Neptune", "Database"},
	{"Amazon DocumentDB", "Database"},
	{"Amazon Timestream", "Database"},
	{"Amazon Quantum Ledger Database", "Database"},
	{"Amazon Keyspaces", "Database"},
	{"Amazon Aurora", "Database"},

	// Networking & Content Delivery
	{"Amazon Virtual Private Cloud", "Networking"},
	{"Amazon CloudFront", "Networking"},
	{"Amazon Route 53", "Networking"},
	{"Elastic Load Balancing", "Networking"},
	{"AWS Direct Connect", "Networking"},
	{"Amazon API Gateway", "Networking"},
	{"Amazon VPC", "Networking"},
	{"AWS Global Accelerator", "Networking"},
	{"AWS Transit Gateway", "Networking"},

	// Analytics
	{"Amazon Athena", "Analytics"},
	{"Amazon EMR", "Analytics"},
	{"Amazon Kinesis", "Analytics"},
	{"Amazon Managed Streaming for Apache Kafka", "Analytics"},
	{"Amazon OpenSearch Service", "Analytics"},
	{"Amazon QuickSight", "Analytics"},
	{"AWS Glue", "Analytics"},
	{"Amazon Elasticsearch Service", "Analytics"},
	{"Amazon Data Firehose", "Analytics"},

	// Machine Learning
	{"Amazon SageMaker", "Machine Learning"},
	{"Amazon Comprehend", "Machine Learning"},
	{"Amazon Rekognition", "Machine Learning"},
	{"Amazon Polly", "Machine Learning"},
	{"Amazon Translate", "Machine Learning"},
	{"Amazon Lex", "Machine Learning"},
	{"Amazon Forecast", "Machine Learning"},
	{"Amazon Textract", "Machine Learning"},

	// Security & Identity
	{"AWS Key Management Service", "Security"},
	{"AWS WAF", "Security"},
	{"Amazon GuardDuty", "Security"},
	{"AWS Shield", "Security"},
	{"AWS Certificate Manager", "Security"},
	{"AWS Secrets Manager", "Security"},
	{"AWS Identity and Access Management", "Security"},
	{"AWS IAM", "Security"},
	{"Amazon Inspector", "Security"},
	{"AWS Directory Service", "Security"},

	// Management & Governance
	{"AWS CloudTrail", "Management"},
	{"Amazon CloudWatch", "Management"},
	{"AWS Config", "Management"},
	{"AWS Systems Manager", "Management"},
	{"AWS CloudFormation", "Management"},
	{"AWS Organizations", "Management"},
	{"AWS Control Tower", "Management"},
	{"AWS Trusted Advisor", "Management"},
	{"AWS Cost Explorer", "Management"},

	// Developer Tools
	{"AWS CodeBuild", "Developer Tools"},
	{"AWS CodeCommit", "Developer Tools"},
	{"AWS CodeDeploy", "Developer Tools"},
	{"AWS CodePipeline", "Developer Tools"},
	{"AWS CodeStar", "Developer Tools"},
	{"AWS X-Ray", "Developer Tools"},

	// Application Integration
	{"Amazon Simple Queue Service", "Integration"},
	{"Amazon Simple Notification Service", "Integration"},
	{"Amazon MQ", "Integration"},
	{"AWS Step Functions", "Integration"},
	{"Amazon AppFlow", "Integration"},
	{"Amazon EventBridge", "Integration"},

	// Customer Engagement
	{"Amazon Connect", "Customer Engagement"},
	{"Amazon Pinpoint", "Customer Engagement"},
	{"Amazon Simple Email Service", "Customer Engagement"},

	// Support & Billing
	{"AWS Support", "Support & Billing"},
	{"AWS Billing", "Support & Billing"},
	{"Tax", "Support & Billing"},
}

// Categorize maps a service name to its spend category. An exact table
// match wins; otherwise the first entry where either name contains the
// other (case-insensitive) is used, and unmatched services fall back to
// CategoryOther. Pure function, no side effects.
func Categorize(serviceName string) string {
	for _, sc := range serviceCategories {
		if sc.service == serviceName {
			return sc.category
		}
	}

	lower := strings.ToLower(serviceName)
	for _, sc := range serviceCategories {
		known := strings.ToLower(sc.service)
		if strings.Contains(lower, known) || strings.Contains(known, lower) {
			return sc.category
		}
	}

	return CategoryOther
}

// CategorizeServiceCosts buckets service costs into category totals.
func CategorizeServiceCosts(serviceCosts []entity.ServiceCost) map[string]float64 {
	categoryTotals := make(map[string]float64)
	for _, sc := range serviceCosts {
		categoryTotals[Categorize(sc.ServiceName)] += sc.Cost
	}
	return categoryTotals
}

// FormatCategoryCosts renders category totals as display lines sorted
// descending by amount, with category name order breaking ties.
func FormatCategoryCosts(categoryTotals map[string]float64) []string {
	categories := make([]string, 0, len(categoryTotals))
	for category := range categoryTotals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categoryTotals[categories[i]] != categoryTotals[categories[j]] {
			return categoryTotals[categories[i]] > categoryTotals[categories[j]]
		}
		return categories[i] < categories[j]
	})

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", category, categoryTotals[category]))
	}
	return lines
}
