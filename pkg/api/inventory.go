package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// ListInventory fetches inventory items, optionally filtered by category
func (c *Client) ListInventory(ctx context.Context, category string, page, limit int) ([]types.InventoryItem, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return getList[types.InventoryItem](ctx, c, "/inventory", query)
}

// GetInventoryItem fetches one item by ID
func (c *Client) GetInventoryItem(ctx context.Context, id string) (*types.InventoryItem, error) {
	return getOne[types.InventoryItem](ctx, c, "/inventory/"+id, nil)
}

// CreateInventoryItem creates an item
func (c *Client) CreateInventoryItem(ctx context.Context, req types.InventoryRequest) (*types.InventoryItem, error) {
	var created types.InventoryItem
	if err := c.do(ctx, request{method: http.MethodPost, path: "/inventory", body: req}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInventoryItem updates an item
func (c *Client) UpdateInventoryItem(ctx context.Context, id string, req types.InventoryRequest) (*types.InventoryItem, error) {
	var updated types.InventoryItem
	if err := c.do(ctx, request{method: http.MethodPut, path: "/inventory/" + id, body: req}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInventoryItem removes an item
func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/inventory/" + id}, nil)
}

// RestockInventoryItem adds stock to an existing item
func (c *Client) RestockInventoryItem(ctx context.Context, id string, req types.RestockRequest) (*types.InventoryItem, error) {
	var updated types.InventoryItem
	if err := c.do(ctx, request{method: http.MethodPut, path: "/inventory/" + id + "/restock", body: req}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// InventoryStats fetches the stock summary statistic
func (c *Client) InventoryStats(ctx context.Context) (*types.InventoryStats, error) {
	return getOne[types.InventoryStats](ctx, c, "/inventory/stats", nil)
}
