package costs

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

// noiseThreshold is the per-service total below which a cost is treated as
// rounding noise and dropped from the report.
const noiseThreshold = 0.001

// RawServiceCost is one unaggregated group entry from a billing query: a
// service key and its amount as the decimal string the API returns. The
// same service may appear once per time bucket.
type RawServiceCost struct {
	Service string
	Amount  string
}

// AggregateServiceCosts collapses raw group entries into one total per
// service. Amounts for duplicate service keys are summed across all time
// buckets, totals at or below the noise threshold are dropped, and the
// result is sorted descending by cost. Entries whose amount does not parse
// are skipped so a partially malformed response still yields output. Ties
// keep first-encounter order.
func AggregateServiceCosts(entries []RawServiceCost) []entity.ServiceCost {
	totals := make(map[string]float64, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		amount, err := strconv.ParseFloat(e.Amount, 64)
		if err != nil {
			continue
		}
		if _, seen := totals[e.Service]; !seen {
			order = append(order, e.Service)
		}
		totals[e.Service] += amount
	}

	serviceCosts := make([]entity.ServiceCost, 0, len(order))
	for _, service := range order {
		if totals[service] > noiseThreshold {
			serviceCosts = append(serviceCosts, entity.ServiceCost{
				ServiceName: service,
				Cost:        totals[service],
			})
		}
	}

	sort.SliceStable(serviceCosts, func(i, j int) bool {
		return serviceCosts[i].Cost > serviceCosts[j].Cost
	})

	return serviceCosts
}

// FormatServiceCosts renders aggregated service costs as display lines in
// the same order, with a placeholder line when there are none.
func FormatServiceCosts(serviceCosts []entity.ServiceCost) []string {
	if len(serviceCosts) == 0 {
		return []string{"No costs associated with this account"}
	}
	lines := make([]string, 0, len(serviceCosts))
	for _, sc := range serviceCosts {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", sc.ServiceName, sc.Cost))
	}
	return lines
}
