package repository

import (
	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

// ExportRepository writes report artifacts. Each export is independent:
// a failure returns an error without affecting other exports in the run.
type ExportRepository interface {
	ExportToCSV(data []entity.ProfileData, filename, outputDir, previousPeriodDates, currentPeriodDates string) (string, error)
	ExportToJSON(data []entity.ProfileData, filename, outputDir string) (string, error)
	ExportToPDF(data []entity.ProfileData, filename, outputDir, previousPeriodDates, currentPeriodDates string) (string, error)

	ExportAuditReportToCSV(auditData []entity.AuditData, filename, outputDir string) (string, error)
	ExportAuditReportToJSON(auditData []entity.AuditData, filename, outputDir string) (string, error)
}
