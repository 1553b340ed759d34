// Package cron runs the CRM maintenance jobs against the GraphQL API.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/crmclient"
)

const (
	JobHeartbeat      = "heartbeat"
	JobLowStock       = "low-stock"
	JobOrderReminders = "order-reminders"
	JobReport         = "report"
)

const (
	heartbeatLayout = "02/01/2006-15:04:05"
	stampLayout     = "2006-01-02 15:04:05"
	reminderLayout  = "2006-01-02 15:04:05.000000"
	dateLayout      = "2006-01-02"
)

const (
	helloQuery = `{ hello }`

	lowStockMutation = `mutation {
  updateLowStockProducts {
    success
    updatedProducts
  }
}`

	orderRemindersQuery = `query ($since: String) {
  allOrders(orderDateGte: $since) {
    edges {
      node {
        id
        customer {
          email
        }
        orderDate
      }
    }
  }
}`

	reportQuery = `{
  allCustomers {
    totalCount
  }
  allOrders {
    totalCount
    totalRevenue
  }
}`
)

// Jobs holds the collaborators shared by every scheduled job. Failures are
// written to the job's log file and never returned.
type Jobs struct {
	cfg    config.Cron
	client crmclient.Querier
	logger *slog.Logger
	now    func() time.Time
}

func NewJobs(cfg config.Cron, client crmclient.Querier, logger *slog.Logger) *Jobs {
	return &Jobs{
		cfg:    cfg,
		client: client,
		logger: logger.With(slog.String("service", "cron")),
		now:    time.Now,
	}
}

// All returns every job with its configured interval.
func (j *Jobs) All() []Job {
	return []Job{
		{Name: JobHeartbeat, Interval: j.cfg.HeartbeatInterval, Run: j.Heartbeat},
		{Name: JobLowStock, Interval: j.cfg.LowStockInterval, Run: j.UpdateLowStock},
		{Name: JobOrderReminders, Interval: j.cfg.OrderReminderInterval, Run: j.SendOrderReminders},
		{Name: JobReport, Interval: j.cfg.ReportInterval, Run: j.GenerateReport},
	}
}

// Heartbeat records that the CRM is alive, then probes the hello query.
func (j *Jobs) Heartbeat(ctx context.Context) {
	j.appendLog(ctx, j.cfg.HeartbeatLogFile, j.now().Format(heartbeatLayout)+" CRM is alive")

	var out struct {
		Hello string `json:"hello"`
	}
	if err := j.client.Query(ctx, helloQuery, nil, &out); err != nil {
		j.logger.ErrorContext(ctx, "error querying graphql hello", slog.Any("error", err))
		return
	}

	j.logger.InfoContext(ctx, "graphql hello query success", slog.String("hello", out.Hello))
}

// UpdateLowStock restocks low-stock products and logs their new levels.
func (j *Jobs) UpdateLowStock(ctx context.Context) {
	stamp := j.now().Format(stampLayout)

	var data map[string]json.RawMessage
	if err := j.client.Query(ctx, lowStockMutation, nil, &data); err != nil {
		j.appendLog(ctx, j.cfg.LowStockLogFile, fmt.Sprintf("%s - EXCEPTION: %v", stamp, err))
		return
	}

	raw, ok := data["updateLowStockProducts"]
	var payload struct {
		Success         string   `json:"success"`
		UpdatedProducts []string `json:"updatedProducts"`
	}
	if !ok || json.Unmarshal(raw, &payload) != nil {
		j.appendLog(ctx, j.cfg.LowStockLogFile,
			fmt.Sprintf("%s - ERROR: Unexpected response format: %s", stamp, formatData(data)))
		return
	}

	j.appendLog(ctx, j.cfg.LowStockLogFile,
		stamp+" - Updated Products:",
		strings.Join(payload.UpdatedProducts, "\n"),
	)
	j.logger.InfoContext(ctx, payload.Success, slog.Int("count", len(payload.UpdatedProducts)))
}

// SendOrderReminders logs every order placed within the lookback window.
func (j *Jobs) SendOrderReminders(ctx context.Context) {
	now := j.now()
	since := now.Add(-j.cfg.OrderReminderLookback).Format(dateLayout)

	var out struct {
		AllOrders struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Customer struct {
						Email string `json:"email"`
					} `json:"customer"`
					OrderDate string `json:"orderDate"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"allOrders"`
	}
	if err := j.client.Query(ctx, orderRemindersQuery, map[string]any{"since": since}, &out); err != nil {
		j.appendLog(ctx, j.cfg.OrderReminderLogFile,
			fmt.Sprintf("%s: Error - %v", now.Format(reminderLayout), err))
		j.logger.ErrorContext(ctx, "failed to process order reminders", slog.Any("error", err))
		return
	}

	lines := make([]string, 0, len(out.AllOrders.Edges))
	for _, edge := range out.AllOrders.Edges {
		lines = append(lines, fmt.Sprintf("%s: Order ID %s, Email %s",
			j.now().Format(reminderLayout), edge.Node.ID, edge.Node.Customer.Email))
	}
	if len(lines) > 0 {
		j.appendLog(ctx, j.cfg.OrderReminderLogFile, lines...)
	}

	j.logger.InfoContext(ctx, "order reminders processed",
		slog.String("since", since),
		slog.Int("count", len(lines)),
	)
}

// GenerateReport logs customer and order counts with total revenue.
func (j *Jobs) GenerateReport(ctx context.Context) {
	var out struct {
		AllCustomers struct {
			TotalCount int `json:"totalCount"`
		} `json:"allCustomers"`
		AllOrders struct {
			TotalCount   int    `json:"totalCount"`
			TotalRevenue string `json:"totalRevenue"`
		} `json:"allOrders"`
	}

	line, err := func() (string, error) {
		if err := j.client.Query(ctx, reportQuery, nil, &out); err != nil {
			return "", err
		}

		revenue, err := decimal.NewFromString(out.AllOrders.TotalRevenue)
		if err != nil {
			return "", fmt.Errorf("parse total revenue %q: %w", out.AllOrders.TotalRevenue, err)
		}

		return fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
			j.now().Format(stampLayout),
			out.AllCustomers.TotalCount,
			out.AllOrders.TotalCount,
			revenue.StringFixed(2),
		), nil
	}()
	if err != nil {
		line = fmt.Sprintf("%s - ERROR: %v", j.now().Format(stampLayout), err)
	}

	j.appendLog(ctx, j.cfg.ReportLogFile, line)
}

func (j *Jobs) appendLog(ctx context.Context, path string, lines ...string) {
	if err := appendLines(path, lines...); err != nil {
		j.logger.ErrorContext(ctx, "error writing job log",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

func formatData(data map[string]json.RawMessage) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprint(data)
	}
	return string(b)
}
