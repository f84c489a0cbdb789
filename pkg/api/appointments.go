package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// ListAppointments fetches appointments matching the filters
func (c *Client) ListAppointments(ctx context.Context, f types.AppointmentFilters) ([]types.Appointment, error) {
	query := url.Values{}
	if f.PatientID != "" {
		query.Set("patientId", f.PatientID)
	}
	if f.DoctorID != "" {
		query.Set("doctorId", f.DoctorID)
	}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	if f.Date != "" {
		query.Set("date", f.Date)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	return getList[types.Appointment](ctx, c, "/appointments", query)
}

// GetAppointment fetches one appointment by ID
func (c *Client) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	return getOne[types.Appointment](ctx, c, "/appointments/"+id, nil)
}

// CreateAppointment books a new appointment
func (c *Client) CreateAppointment(ctx context.Context, req types.AppointmentRequest) (*types.Appointment, error) {
	var created types.Appointment
	if err := c.do(ctx, request{method: http.MethodPost, path: "/appointments", body: req}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAppointment updates an existing appointment
func (c *Client) UpdateAppointment(ctx context.Context, id string, req types.AppointmentRequest) (*types.Appointment, error) {
	var updated types.Appointment
	if err := c.do(ctx, request{method: http.MethodPut, path: "/appointments/" + id, body: req}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAppointmentStatus transitions an appointment's status
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status types.AppointmentStatus) (*types.Appointment, error) {
	body := struct {
		Status types.AppointmentStatus `json:"status"`
	}{Status: status}

	var updated types.Appointment
	if err := c.do(ctx, request{method: http.MethodPut, path: "/appointments/" + id, body: body}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAppointment removes an appointment
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/appointments/" + id}, nil)
}

// AppointmentStats fetches the appointment summary statistic
func (c *Client) AppointmentStats(ctx context.Context) (*types.AppointmentStats, error) {
	return getOne[types.AppointmentStats](ctx, c, "/appointments/stats", nil)
}
