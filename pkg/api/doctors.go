package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// ListDoctors fetches the doctor directory
func (c *Client) ListDoctors(ctx context.Context, q types.DirectoryQuery) ([]types.Doctor, error) {
	return getList[types.Doctor](ctx, c, "/doctors", directoryQuery(q))
}

// GetDoctor fetches one doctor by ID
func (c *Client) GetDoctor(ctx context.Context, id string) (*types.Doctor, error) {
	return getOne[types.Doctor](ctx, c, "/doctors/"+id, nil)
}

// CreateDoctor creates a doctor record
func (c *Client) CreateDoctor(ctx context.Context, d types.Doctor) (*types.Doctor, error) {
	var created types.Doctor
	if err := c.do(ctx, request{method: http.MethodPost, path: "/doctors", body: d}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDoctor updates a doctor record
func (c *Client) UpdateDoctor(ctx context.Context, id string, d types.Doctor) (*types.Doctor, error) {
	var updated types.Doctor
	if err := c.do(ctx, request{method: http.MethodPut, path: "/doctors/" + id, body: d}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDoctor removes a doctor record
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/doctors/" + id}, nil)
}

// AvailableSlots fetches the doctor's published availability for a
// calendar date (YYYY-MM-DD). An empty slice means the doctor has no
// published schedule for that date; the caller falls back to free-text
// time entry.
func (c *Client) AvailableSlots(ctx context.Context, doctorID, date string) ([]types.AvailableSlot, error) {
	query := url.Values{}
	query.Set("date", date)
	return getList[types.AvailableSlot](ctx, c, "/doctors/"+doctorID+"/available-slots", query)
}

// DoctorStats fetches the doctor summary statistic
func (c *Client) DoctorStats(ctx context.Context) (*types.DoctorStats, error) {
	return getOne[types.DoctorStats](ctx, c, "/doctors/stats", nil)
}
