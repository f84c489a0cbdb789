package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// ListPatients fetches the patient directory
func (c *Client) ListPatients(ctx context.Context, q types.DirectoryQuery) ([]types.Patient, error) {
	return getList[types.Patient](ctx, c, "/patients", directoryQuery(q))
}

// GetPatient fetches one patient by ID
func (c *Client) GetPatient(ctx context.Context, id string) (*types.Patient, error) {
	return getOne[types.Patient](ctx, c, "/patients/"+id, nil)
}

// CreatePatient creates a patient record
func (c *Client) CreatePatient(ctx context.Context, p types.Patient) (*types.Patient, error) {
	var created types.Patient
	if err := c.do(ctx, request{method: http.MethodPost, path: "/patients", body: p}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePatient updates a patient record
func (c *Client) UpdatePatient(ctx context.Context, id string, p types.Patient) (*types.Patient, error) {
	var updated types.Patient
	if err := c.do(ctx, request{method: http.MethodPut, path: "/patients/" + id, body: p}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePatient removes a patient record
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/patients/" + id}, nil)
}

// PatientStats fetches the patient summary statistic
func (c *Client) PatientStats(ctx context.Context) (*types.PatientStats, error) {
	return getOne[types.PatientStats](ctx, c, "/patients/stats", nil)
}

// directoryQuery converts a DirectoryQuery into URL parameters
func directoryQuery(q types.DirectoryQuery) url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.IsActive != nil {
		values.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}
