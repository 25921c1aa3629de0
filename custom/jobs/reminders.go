package jobs

import (
	"fmt"
	"time"

	"github.com/romana/rlog"
)

const remindersQuery = `
query ($since: DateTime!) {
  allOrders(orderDateGte: $since) {
    edges {
      node {
        id
        customer {
          email
        }
      }
    }
  }
}`

// OrderReminders Scans orders with an order date inside the trailing
// window and appends one reminder line per order. Lines are written only
// after the full query succeeds, a failed run writes nothing.
type OrderReminders struct {
	client *GraphqlClient
	sink   *LogSink
	window time.Duration
}

func NewOrderReminders(client *GraphqlClient, sink *LogSink, windowDays int) *OrderReminders {
	return &OrderReminders{
		client: client,
		sink:   sink,
		window: time.Duration(windowDays) * 24 * time.Hour,
	}
}

func (j *OrderReminders) Run() {
	since := time.Now().UTC().Add(-j.window)
	result := struct {
		AllOrders struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Customer *struct {
						Email string `json:"email"`
					} `json:"customer"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"allOrders"`
	}{}

	variables := map[string]interface{}{"since": since.Format(time.RFC3339)}
	if err := j.client.Execute(remindersQuery, variables, &result); err != nil {
		rlog.Error("Order reminders fail:", err.Error())
		return
	}

	timestamp := Timestamp(time.Now())
	lines := make([]string, 0, len(result.AllOrders.Edges))
	for _, edge := range result.AllOrders.Edges {
		email := "No email"
		if edge.Node.Customer != nil && edge.Node.Customer.Email != "" {
			email = edge.Node.Customer.Email
		}
		lines = append(lines, fmt.Sprintf("%s Order ID: %s, Customer Email: %s",
			timestamp, edge.Node.ID, email))
	}

	if err := j.sink.Append(lines...); err != nil {
		rlog.Error("Write reminder log fail:", err.Error())
		return
	}
	rlog.Infof("Order reminders processed, %d orders in window", len(lines))
}
