package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/application/costs"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/repository"
)

// ExportRepositoryImpl writes report artifacts to the local filesystem.
type ExportRepositoryImpl struct{}

func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes one row per profile. Multi-line cells (services,
// categories, budgets, EC2) use embedded newlines inside a quoted field.
func (r *ExportRepositoryImpl) ExportToCSV(data []entity.ProfileData, filename, outputDir, previousPeriodDates, currentPeriodDates string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"CLI Profile", "AWS Account ID",
		fmt.Sprintf("Cost for period (%s)", previousPeriodDates),
		fmt.Sprintf("Cost for period (%s)", currentPeriodDates),
		"Cost By Service", "Cost By Category", "Budget Status", "EC2 Instances",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range data {
		var serviceLines []string
		for _, sc := range row.ServiceCosts {
			serviceLines = append(serviceLines, fmt.Sprintf("%s: $%.2f", sc.ServiceName, sc.Cost))
		}
		categoryLines := costs.FormatCategoryCosts(costs.CategorizeServiceCosts(row.ServiceCosts))

		record := []string{
			row.Profile,
			row.AccountID,
			fmt.Sprintf("$%.2f", row.PreviousPeriodCost),
			fmt.Sprintf("$%.2f", row.CurrentPeriodCost),
			strings.Join(serviceLines, "\n"),
			strings.Join(categoryLines, "\n"),
			strings.Join(row.BudgetInfo, "\n"),
			cleanRichTags(strings.Join(row.EC2SummaryFormatted, "\n")),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(data []entity.ProfileData, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(data []entity.ProfileData, filename, outputDir, previousPeriodDates, currentPeriodDates string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, title)
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	for i, row := range data {
		pdf.AddPage()

		pdf.SetFillColor(40, 40, 40)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 14)
		profileName := row.Profile
		if len(profileName) > 80 {
			profileName = profileName[:77] + "..."
		}
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", profileName)), "", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s", row.AccountID)), "", 1, "L", true, 0, "")
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, "Cost Summary")
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		costTableWidth := 95.0
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(costTableWidth, 7, tr(row.PreviousPeriodName), "B", 0, "L", false, 0, "")
		pdf.CellFormat(costTableWidth, 7, tr(row.CurrentPeriodName), "B", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(costTableWidth, 5, tr(previousPeriodDates), "", 0, "L", false, 0, "")
		pdf.CellFormat(costTableWidth, 5, tr(currentPeriodDates), "", 1, "L", false, 0, "")
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])

		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(costTableWidth, 12, tr(fmt.Sprintf("$%.2f", row.PreviousPeriodCost)), "", 0, "L", false, 0, "")

		changeText := ""
		origR, origG, origB := pdf.GetTextColor()
		if row.PercentChangeInCost != nil {
			val := *row.PercentChangeInCost
			if val > 0.01 {
				pdf.SetTextColor(192, 0, 0)
				changeText = fmt.Sprintf("  (+%.2f%%)", val)
			} else if val < -0.01 {
				pdf.SetTextColor(0, 128, 0)
				changeText = fmt.Sprintf("  (%.2f%%)", val)
			} else {
				changeText = "  (0.00%)"
			}
		}

		pdf.SetFont("Arial", "B", 16)
		valueStr := fmt.Sprintf("$%.2f", row.CurrentPeriodCost)
		pdf.Cell(pdf.GetStringWidth(valueStr), 12, tr(valueStr))

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(costTableWidth-pdf.GetStringWidth(valueStr), 12, tr(changeText), "", 1, "L", false, 0, "")

		pdf.SetTextColor(origR, origG, origB)
		pdf.Ln(10)

		var serviceLines []string
		for _, sc := range row.ServiceCosts {
			serviceLines = append(serviceLines, fmt.Sprintf("%s: $%.2f", sc.ServiceName, sc.Cost))
		}
		categoryLines := costs.FormatCategoryCosts(costs.CategorizeServiceCosts(row.ServiceCosts))

		drawSection("Cost By Service", strings.Join(serviceLines, "\n"))
		drawSection("Cost By Category", strings.Join(categoryLines, "\n"))
		drawSection("Budget Status", strings.Join(row.BudgetInfo, "\n\n"))
		drawSection("EC2 Instances", cleanRichTags(strings.Join(row.EC2SummaryFormatted, "\n")))

		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by AWS FinOps Dashboard | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAuditReportToCSV(auditData []entity.AuditData, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Profile", "Account ID", "Untagged Resources", "Stopped EC2 Instances",
		"Unused Volumes", "Unused EIPs", "Idle Load Balancers", "Budget Alerts",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range auditData {
		record := []string{
			row.Profile,
			row.AccountID,
			cleanRichTags(row.UntaggedResources),
			cleanRichTags(row.StoppedInstances),
			cleanRichTags(row.UnusedVolumes),
			cleanRichTags(row.UnusedEIPs),
			cleanRichTags(row.IdleLoadBalancers),
			cleanRichTags(row.BudgetAlerts),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportAuditReportToJSON(auditData []entity.AuditData, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	cleaned := make([]entity.AuditData, 0, len(auditData))
	for _, row := range auditData {
		cleaned = append(cleaned, entity.AuditData{
			Profile:           row.Profile,
			AccountID:         row.AccountID,
			UntaggedResources: cleanRichTags(row.UntaggedResources),
			StoppedInstances:  cleanRichTags(row.StoppedInstances),
			UnusedVolumes:     cleanRichTags(row.UnusedVolumes),
			UnusedEIPs:        cleanRichTags(row.UnusedEIPs),
			IdleLoadBalancers: cleanRichTags(row.IdleLoadBalancers),
			BudgetAlerts:      cleanRichTags(row.BudgetAlerts),
		})
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(cleaned); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename builds "<base>_<timestamp>.<ext>" under dir, creating
// dir if needed. The timestamp has minute resolution; runs less than a
// minute apart overwrite each other.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_1504")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, timestamp, ext)), nil
}

var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags strips pterm rich tags and ANSI escape sequences.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	return ansiRegex.ReplaceAllString(text, "")
}
