package api

import (
	"context"
	"net/http"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// Login authenticates with email and password. The request never
// carries an existing credential.
func (c *Client) Login(ctx context.Context, creds types.Credentials) (*types.AuthPayload, error) {
	var payload types.AuthPayload
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     creds,
		skipAuth: true,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates a new account and returns the signed-in payload
func (c *Client) Register(ctx context.Context, req types.RegistrationRequest) (*types.AuthPayload, error) {
	var payload types.AuthPayload
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     req,
		skipAuth: true,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context) (*types.User, error) {
	return getOne[types.User](ctx, c, "/auth/profile", nil)
}

// UpdateProfile updates the authenticated user's profile and returns
// the stored result
func (c *Client) UpdateProfile(ctx context.Context, update types.ProfileUpdate) (*types.User, error) {
	var user types.User
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/auth/profile",
		body:   update,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
