package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// ListBills fetches bills, optionally filtered by patient and status
func (c *Client) ListBills(ctx context.Context, patientID, status string, page, limit int) ([]types.Bill, error) {
	query := url.Values{}
	if patientID != "" {
		query.Set("patientId", patientID)
	}
	if status != "" {
		query.Set("status", status)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return getList[types.Bill](ctx, c, "/bills", query)
}

// GetBill fetches one bill by ID
func (c *Client) GetBill(ctx context.Context, id string) (*types.Bill, error) {
	return getOne[types.Bill](ctx, c, "/bills/"+id, nil)
}

// CreateBill creates a bill
func (c *Client) CreateBill(ctx context.Context, req types.BillRequest) (*types.Bill, error) {
	var created types.Bill
	if err := c.do(ctx, request{method: http.MethodPost, path: "/bills", body: req}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBill updates a bill
func (c *Client) UpdateBill(ctx context.Context, id string, req types.BillRequest) (*types.Bill, error) {
	var updated types.Bill
	if err := c.do(ctx, request{method: http.MethodPut, path: "/bills/" + id, body: req}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBill removes a bill
func (c *Client) DeleteBill(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/bills/" + id}, nil)
}

// RecordPayment records a payment against a bill
func (c *Client) RecordPayment(ctx context.Context, billID string, p types.PaymentRequest) (*types.Bill, error) {
	var updated types.Bill
	if err := c.do(ctx, request{method: http.MethodPost, path: "/bills/" + billID + "/payments", body: p}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// BillingStats fetches the revenue summary statistic
func (c *Client) BillingStats(ctx context.Context) (*types.BillingStats, error) {
	return getOne[types.BillingStats](ctx, c, "/bills/stats", nil)
}
