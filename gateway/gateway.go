// Package gateway wraps outbound persistence calls to the master backend
// with timeout, retry and error normalization. It is a pure request/response
// boundary: it never mutates store state.
package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/models"
)

// Upstream persistence endpoints
const (
	EndpointSurveyPoints = "/api/encuestas"
	EndpointActivities   = "/api/actividades"
	EndpointPersonnel    = "/api/personal"
	EndpointUsers        = "/api/usuarios"
	EndpointLogin        = "/api/login"
)

// Options configures the gateway client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Gateway is the outbound client for the master backend
type Gateway struct {
	client  *resty.Client
	baseURL string
}

// New builds the client. Retries with backoff are governed by the configured
// maximum retry count, sized for low-connectivity field zones.
func New(opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Gateway{client: client, baseURL: opts.BaseURL}
}

// Enabled reports whether an upstream base URL is configured. With no
// upstream the node runs local-only and sync attempts are skipped.
func (g *Gateway) Enabled() bool {
	return g.baseURL != ""
}

func normalize(endpoint string, resp *resty.Response, err error) error {
	if err != nil {
		kind := ErrorTransport
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			kind = ErrorTimeout
		}
		return &NetworkError{Kind: kind, Endpoint: endpoint, Err: err}
	}
	if resp.IsError() {
		return &NetworkError{Kind: ErrorStatus, Endpoint: endpoint, StatusCode: resp.StatusCode()}
	}
	return nil
}

// Send posts a JSON payload to an upstream endpoint
func (g *Gateway) Send(ctx context.Context, endpoint string, payload interface{}) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(endpoint)
	if nerr := normalize(endpoint, resp, err); nerr != nil {
		return nerr
	}
	zap.S().Debugw("gateway send ok", "endpoint", endpoint, "status", resp.StatusCode())
	return nil
}

// Fetch gets a JSON listing from an upstream endpoint into out
func (g *Gateway) Fetch(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(out).
		Get(endpoint)
	return normalize(endpoint, resp, err)
}

// SaveSurveyPoint persists one survey point upstream
func (g *Gateway) SaveSurveyPoint(ctx context.Context, p models.SurveyPoint) error {
	return g.Send(ctx, EndpointSurveyPoints, p)
}

// SaveActivity persists one activity upstream
func (g *Gateway) SaveActivity(ctx context.Context, a models.Activity) error {
	return g.Send(ctx, EndpointActivities, a)
}

// SavePersonnel persists one personnel record upstream
func (g *Gateway) SavePersonnel(ctx context.Context, p models.Personnel) error {
	return g.Send(ctx, EndpointPersonnel, p)
}

// SaveUser persists one user account upstream
func (g *Gateway) SaveUser(ctx context.Context, u models.UserAccount) error {
	return g.Send(ctx, EndpointUsers, u)
}

// FetchUsers downloads the authoritative user listing
func (g *Gateway) FetchUsers(ctx context.Context) ([]models.UserAccount, error) {
	var users []models.UserAccount
	if err := g.Fetch(ctx, EndpointUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchSurveyPoints downloads previously persisted survey points
func (g *Gateway) FetchSurveyPoints(ctx context.Context) ([]models.SurveyPoint, error) {
	var points []models.SurveyPoint
	if err := g.Fetch(ctx, EndpointSurveyPoints, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Login exchanges credentials for the authenticated user object
func (g *Gateway) Login(ctx context.Context, creds models.Credentials) (models.UserAccount, error) {
	var user models.UserAccount
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&user).
		Post(EndpointLogin)
	if nerr := normalize(EndpointLogin, resp, err); nerr != nil {
		return models.UserAccount{}, nerr
	}
	return user, nil
}
