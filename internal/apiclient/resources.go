package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"tempmon_dashboard/internal/models"
)

// Temperature endpoints

func (c *Client) GetTemperatures(ctx context.Context, q TemperatureQuery) (models.ReadingList, error) {
	return getInto[models.ReadingList](ctx, c, "/temperatures", q.Params())
}

func (c *Client) GetLatestTemperatures(ctx context.Context, q TemperatureQuery) (models.LatestTemperatures, error) {
	return getInto[models.LatestTemperatures](ctx, c, "/temperatures/latest", q.Params())
}

func (c *Client) GetTemperatureStats(ctx context.Context, q TemperatureQuery) (models.Record, error) {
	return getInto[models.Record](ctx, c, "/temperatures/statistics", q.Params())
}

func (c *Client) GetTemperatureAlerts(ctx context.Context, q TemperatureQuery) (models.AlertList, error) {
	return getInto[models.AlertList](ctx, c, "/temperatures/alerts", q.Params())
}

// Customer endpoints

func (c *Client) GetCurrentCustomer(ctx context.Context) (models.Record, error) {
	return getInto[models.Record](ctx, c, "/customers/me", nil)
}

func (c *Client) GetCustomerFacilities(ctx context.Context) (models.FacilityList, error) {
	return getInto[models.FacilityList](ctx, c, "/customers/me/facilities", nil)
}

// TriggerIngestion asks the backend to pull fresh readings for the current customer.
func (c *Client) TriggerIngestion(ctx context.Context) (*Result, error) {
	return c.Request(ctx, "/customers/me/trigger-ingestion", Options{Method: http.MethodPost})
}

// Admin endpoints

func (c *Client) GetAllCustomers(ctx context.Context) (models.RecordList, error) {
	return getInto[models.RecordList](ctx, c, "/admin/customers", nil)
}

func (c *Client) GetAllFacilities(ctx context.Context) (models.RecordList, error) {
	return getInto[models.RecordList](ctx, c, "/admin/facilities", nil)
}

func (c *Client) GetSystemConfig(ctx context.Context) (models.Record, error) {
	return getInto[models.Record](ctx, c, "/admin/config", nil)
}

func (c *Client) GetSystemOverview(ctx context.Context) (models.Record, error) {
	return getInto[models.Record](ctx, c, "/admin/system/overview", nil)
}

func (c *Client) GetSystemAlerts(ctx context.Context) (models.AlertList, error) {
	return getInto[models.AlertList](ctx, c, "/admin/system/alerts", nil)
}

// GetCustomerStats reads per-customer resource counts for the admin charts.
func (c *Client) GetCustomerStats(ctx context.Context) ([]models.CustomerStat, error) {
	var out []models.CustomerStat
	res, err := c.do(ctx, c.cfg.AdminBaseURL, "/admin/api/customer_stats", Options{})
	if err != nil {
		return nil, err
	}
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode customer stats: %w", err)
	}
	return out, nil
}

// GetIngestionSummary reads the success/failure summary of recent ingestion runs.
func (c *Client) GetIngestionSummary(ctx context.Context) (models.IngestionSummary, error) {
	var out models.IngestionSummary
	res, err := c.do(ctx, c.cfg.AdminBaseURL, "/admin/api/ingestion_summary", Options{})
	if err != nil {
		return out, err
	}
	if err := res.Decode(&out); err != nil {
		return out, fmt.Errorf("decode ingestion summary: %w", err)
	}
	return out, nil
}

// Health reads the backend health document.
func (c *Client) Health(ctx context.Context) (models.Record, error) {
	var out models.Record
	if c.cfg.HealthURL == "" {
		return out, fmt.Errorf("health url not configured")
	}
	res, err := c.do(ctx, c.cfg.HealthURL, "", Options{Route: "health"})
	if err != nil {
		return out, err
	}
	if err := res.Decode(&out); err != nil {
		return out, fmt.Errorf("decode health: %w", err)
	}
	return out, nil
}
