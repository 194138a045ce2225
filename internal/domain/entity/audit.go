package entity

// AuditData represents the audit findings for a specific AWS profile.
// Each field is a pre-formatted, possibly multi-line block.
type AuditData struct {
	Profile           string `json:"profile"`
	AccountID         string `json:"account_id"`
	UntaggedResources string `json:"untagged_resources"`
	StoppedInstances  string `json:"stopped_instances"`
	UnusedVolumes     string `json:"unused_volumes"`
	UnusedEIPs        string `json:"unused_eips"`
	IdleLoadBalancers string `json:"idle_load_balancers"`
	BudgetAlerts      string `json:"budget_alerts"`
}
