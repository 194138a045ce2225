package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

func sampleProfileData() []entity.ProfileData {
	change := 12.5
	return []entity.ProfileData{
		{
			Profile:            "dev",
			AccountID:          "123456789012",
			PreviousPeriodCost: 100.0,
			CurrentPeriodCost:  112.5,
			ServiceCosts: []entity.ServiceCost{
				{ServiceName: "Amazon Elastic Compute Cloud", Cost: 80.0},
				{ServiceName: "AWS Lambda", Cost: 32.5},
			},
			ServiceCostsFormatted: []string{
				"Amazon Elastic Compute Cloud: $80.00",
				"AWS Lambda: $32.50",
			},
			BudgetInfo:          []string{"monthly limit: $500.00", "monthly actual: $112.50"},
			EC2Summary:          entity.EC2Summary{"running": 3, "stopped": 1},
			EC2SummaryFormatted: []string{"[green]running: 3[/green]", "[red]stopped: 1[/red]"},
			Success:             true,
			CurrentPeriodName:   "Current month's cost",
			PreviousPeriodName:  "Last month's cost",
			PercentChangeInCost: &change,
		},
	}
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := NewExportRepository().ExportToCSV(sampleProfileData(), "report", dir, "2025-02-01 to 2025-02-28", "2025-03-01 to 2025-03-15")
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}
	if filepath.Ext(path) != ".csv" {
		t.Errorf("Expected a .csv path, got %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Could not open exported file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus one row, got %d records", len(records))
	}

	header := records[0]
	wantHeader := []string{
		"CLI Profile", "AWS Account ID",
		"Cost for period (2025-02-01 to 2025-02-28)",
		"Cost for period (2025-03-01 to 2025-03-15)",
		"Cost By Service", "Cost By Category", "Budget Status", "EC2 Instances",
	}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("Header[%d] = %q, want %q", i, header[i], wantHeader[i])
		}
	}

	row := records[1]
	if row[0] != "dev" || row[1] != "123456789012" {
		t.Errorf("Unexpected identity columns: %v", row[:2])
	}
	if row[2] != "$100.00" || row[3] != "$112.50" {
		t.Errorf("Unexpected cost columns: %v", row[2:4])
	}
	if !strings.Contains(row[4], "AWS Lambda: $32.50") {
		t.Errorf("Cost By Service column missing service line: %q", row[4])
	}
	if !strings.Contains(row[5], "Compute: $112.50") {
		t.Errorf("Cost By Category column should bucket EC2 and Lambda as Compute: %q", row[5])
	}
	if strings.Contains(row[7], "[green]") {
		t.Errorf("EC2 column must not carry rich tags: %q", row[7])
	}
}

func TestExportToCSV_EmptyData(t *testing.T) {
	dir := t.TempDir()

	path, err := NewExportRepository().ExportToCSV(nil, "report", dir, "a", "b")
	if err != nil {
		t.Fatalf("ExportToCSV failed on empty input: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Could not open exported file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Empty input should still produce a header row, got %d records", len(records))
	}
}

func TestExportToJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := sampleProfileData()

	path, err := NewExportRepository().ExportToJSON(data, "report", dir)
	if err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Could not read exported file: %v", err)
	}

	var decoded []entity.ProfileData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("Expected one profile, got %d", len(decoded))
	}
	if decoded[0].Profile != data[0].Profile || decoded[0].CurrentPeriodCost != data[0].CurrentPeriodCost {
		t.Errorf("Round trip lost data: %+v", decoded[0])
	}
	if decoded[0].PercentChangeInCost == nil || *decoded[0].PercentChangeInCost != 12.5 {
		t.Errorf("Percent change lost in round trip: %+v", decoded[0].PercentChangeInCost)
	}

	if !strings.Contains(string(raw), "    \"profile\"") {
		t.Error("Exported JSON should be indented with four spaces")
	}
}

func TestExportAuditReportToCSV(t *testing.T) {
	dir := t.TempDir()
	audit := []entity.AuditData{{
		Profile:           "dev",
		AccountID:         "123456789012",
		UntaggedResources: "EC2 (us-east-1): i-abc",
		StoppedInstances:  "[yellow]us-east-1: i-def[/yellow]",
		UnusedVolumes:     "None",
		UnusedEIPs:        "None",
		IdleLoadBalancers: "us-east-1: lb-1",
		BudgetAlerts:      "No budgets exceeded",
	}}

	path, err := NewExportRepository().ExportAuditReportToCSV(audit, "audit", dir)
	if err != nil {
		t.Fatalf("ExportAuditReportToCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Could not open exported file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus one row, got %d", len(records))
	}
	if records[0][6] != "Idle Load Balancers" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if strings.Contains(records[1][3], "[yellow]") {
		t.Errorf("Stopped instances column must not carry rich tags: %q", records[1][3])
	}
}

func TestGenerateFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := generateFilename("report", dir, "csv")
	if err != nil {
		t.Fatalf("generateFilename failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Output directory was not created: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "report_") || !strings.HasSuffix(base, ".csv") {
		t.Errorf("Unexpected filename: %s", base)
	}
	// report_YYYYMMDD_HHMM.csv
	if len(base) != len("report_20060102_1504.csv") {
		t.Errorf("Timestamp should have minute resolution: %s", base)
	}
}

func TestCleanRichTags(t *testing.T) {
	in := "[green]running: 3[/green] \x1b[31mred\x1b[0m [#ff0000]x[/#ff0000]"
	got := cleanRichTags(in)
	if strings.ContainsAny(got, "[\x1b") && strings.Contains(got, "green") {
		t.Errorf("Rich tags not stripped: %q", got)
	}
	if !strings.Contains(got, "running: 3") {
		t.Errorf("Content lost while stripping tags: %q", got)
	}
}
