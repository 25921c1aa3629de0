package jobs

import (
	"fmt"
	"time"

	"github.com/romana/rlog"
	"github.com/shopspring/decimal"
)

const reportQuery = `
query {
  allCustomers {
    totalCount
  }
  allOrders {
    totalCount
    edges {
      node {
        totalAmount
      }
    }
  }
}`

// WeeklyReport Sums customer count, order count and revenue through the
// GraphQL boundary and appends one summary line. Any failure appends a
// failure line instead; the next scheduled run is the retry.
type WeeklyReport struct {
	client *GraphqlClient
	sink   *LogSink
}

func NewWeeklyReport(client *GraphqlClient, sink *LogSink) *WeeklyReport {
	return &WeeklyReport{client: client, sink: sink}
}

func (r *WeeklyReport) Run() {
	result := struct {
		AllCustomers struct {
			TotalCount int `json:"totalCount"`
		} `json:"allCustomers"`
		AllOrders struct {
			TotalCount int `json:"totalCount"`
			Edges      []struct {
				Node struct {
					TotalAmount float64 `json:"totalAmount"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"allOrders"`
	}{}

	if err := r.client.Execute(reportQuery, nil, &result); err != nil {
		rlog.Error("Generate report fail:", err.Error())
		line := fmt.Sprintf("%s - Failed to generate report: %s", Timestamp(time.Now()), err.Error())
		if errLog := r.sink.Append(line); errLog != nil {
			rlog.Error("Write report log fail:", errLog.Error())
		}
		return
	}

	revenue := decimal.Zero
	for _, edge := range result.AllOrders.Edges {
		revenue = revenue.Add(decimal.NewFromFloat(edge.Node.TotalAmount))
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
		Timestamp(time.Now()), result.AllCustomers.TotalCount, result.AllOrders.TotalCount,
		revenue.StringFixed(2))
	if err := r.sink.Append(line); err != nil {
		rlog.Error("Write report log fail:", err.Error())
	}
}
