package entity

import "time"

// Period is an inclusive date range at day granularity.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// QueryEnd returns the exclusive end date expected by Cost Explorer.
func (p Period) QueryEnd() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// String formats the period as "YYYY-MM-DD to YYYY-MM-DD".
func (p Period) String() string {
	return p.Start.Format("2006-01-02") + " to " + p.End.Format("2006-01-02")
}

// TagUsageCosts maps tag value -> usage type -> summed unblended cost.
type TagUsageCosts map[string]map[string]float64

// Add sums cost into the (tag, usage type) cell.
func (t TagUsageCosts) Add(tag, usageType string, cost float64) {
	if _, ok := t[tag]; !ok {
		t[tag] = make(map[string]float64)
	}
	t[tag][usageType] += cost
}

// CostItem is a single usage type line inside a tag group.
type CostItem struct {
	UsageType    string  `json:"usage_type"`
	ResourceType string  `json:"resource_type"`
	Cost         float64 `json:"cost"`
}

// TagCostGroup is the block rendered for one tag value.
type TagCostGroup struct {
	TagValue      string     `json:"tag_value"`
	ResourceTypes []string   `json:"resource_types"`
	Items         []CostItem `json:"items"`
	Total         float64    `json:"total"`
}

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

// CostReport is everything the cost PDF renders.
type CostReport struct {
	CustomerIdentifier string         `json:"customer_identifier"`
	AccountID          string         `json:"account_id"`
	TagKey             string         `json:"tag_key"`
	Period             Period         `json:"period"`
	TagsRequested      bool           `json:"tags_requested"`
	Groups             []TagCostGroup `json:"groups"`
	Services           []ServiceCost  `json:"services,omitempty"`
	Budgets            []BudgetInfo   `json:"budgets,omitempty"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

// GrandTotal sums every tag group total.
func (r CostReport) GrandTotal() float64 {
	var total float64
	for _, g := range r.Groups {
		total += g.Total
	}
	return total
}
