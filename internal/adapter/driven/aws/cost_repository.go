package aws

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-report-lambdas/internal/domain/entity"
	"github.com/diillson/aws-report-lambdas/internal/domain/repository"
)

const (
	dateLayout    = "2006-01-02"
	costMetric    = "UnblendedCost"
	minServiceAmt = 0.001
)

type costClients interface {
	CostExplorer(ctx context.Context) (CostExplorerAPI, error)
	Budgets(ctx context.Context) (BudgetsAPI, error)
}

// CostRepositoryImpl implementa o CostRepository sobre Cost Explorer e Budgets.
type CostRepositoryImpl struct {
	clients costClients
}

// NewCostRepository cria uma nova implementação do CostRepository.
func NewCostRepository(p *ClientProvider) repository.CostRepository {
	return &CostRepositoryImpl{clients: p}
}

func timePeriod(period entity.Period) *ceTypes.DateInterval {
	return &ceTypes.DateInterval{
		Start: aws.String(period.Start.Format(dateLayout)),
		End:   aws.String(period.QueryEnd().Format(dateLayout)),
	}
}

// GetTagUsageCosts soma o custo por (valor da tag, usage type) em todas as páginas.
func (r *CostRepositoryImpl) GetTagUsageCosts(ctx context.Context, tagKey string, period entity.Period) (entity.TagUsageCosts, error) {
	client, err := r.clients.CostExplorer(ctx)
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  timePeriod(period),
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeTag, Key: aws.String(tagKey)},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("USAGE_TYPE")},
		},
	}

	costs := make(entity.TagUsageCosts)
	for {
		result, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error getting costs grouped by tag %s: %s: %w", tagKey, describeError(err), err)
		}

		for _, byTime := range result.ResultsByTime {
			for _, group := range byTime.Groups {
				if len(group.Keys) < 2 {
					continue
				}
				tagValue := tagValueFromKey(group.Keys[0])
				if tagValue == "" {
					continue
				}
				metric, ok := group.Metrics[costMetric]
				if !ok || metric.Amount == nil {
					continue
				}
				cost, err := strconv.ParseFloat(*metric.Amount, 64)
				if err != nil {
					continue
				}
				costs.Add(tagValue, group.Keys[1], cost)
			}
		}

		if aws.ToString(result.NextPageToken) == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return costs, nil
}

// tagValueFromKey converte "Name$web-01" em "web-01".
func tagValueFromKey(key string) string {
	if i := strings.LastIndex(key, "$"); i >= 0 {
		return key[i+1:]
	}
	return key
}

func (r *CostRepositoryImpl) GetServiceCosts(ctx context.Context, period entity.Period) ([]entity.ServiceCost, error) {
	client, err := r.clients.CostExplorer(ctx)
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  timePeriod(period),
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	}

	totals := make(map[string]float64)
	for {
		result, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error getting cost by service: %s: %w", describeError(err), err)
		}
		for _, byTime := range result.ResultsByTime {
			for _, group := range byTime.Groups {
				metric, ok := group.Metrics[costMetric]
				if !ok || metric.Amount == nil || len(group.Keys) == 0 {
					continue
				}
				cost, _ := strconv.ParseFloat(*metric.Amount, 64)
				totals[group.Keys[0]] += cost
			}
		}
		if aws.ToString(result.NextPageToken) == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	var serviceCosts []entity.ServiceCost
	for name, cost := range totals {
		if cost > minServiceAmt {
			serviceCosts = append(serviceCosts, entity.ServiceCost{ServiceName: name, Cost: cost})
		}
	}
	sort.Slice(serviceCosts, func(i, j int) bool {
		if serviceCosts[i].Cost == serviceCosts[j].Cost {
			return serviceCosts[i].ServiceName < serviceCosts[j].ServiceName
		}
		return serviceCosts[i].Cost > serviceCosts[j].Cost
	})

	return serviceCosts, nil
}

func (r *CostRepositoryImpl) GetBudgets(ctx context.Context, accountID string) ([]entity.BudgetInfo, error) {
	client, err := r.clients.Budgets(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing budgets: %s: %w", describeError(err), err)
	}

	budgetsData := []entity.BudgetInfo{}
	for _, budget := range result.Budgets {
		b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
		if budget.BudgetLimit != nil && budget.BudgetLimit.Amount != nil {
			b.Limit, _ = strconv.ParseFloat(*budget.BudgetLimit.Amount, 64)
		}
		if spend := budget.CalculatedSpend; spend != nil {
			if spend.ActualSpend != nil && spend.ActualSpend.Amount != nil {
				b.Actual, _ = strconv.ParseFloat(*spend.ActualSpend.Amount, 64)
			}
			if spend.ForecastedSpend != nil && spend.ForecastedSpend.Amount != nil {
				b.Forecast, _ = strconv.ParseFloat(*spend.ForecastedSpend.Amount, 64)
			}
		}
		budgetsData = append(budgetsData, b)
	}

	return budgetsData, nil
}
