package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

// maxErrorBody bounds how much of a rejection body is kept for diagnostics.
const maxErrorBody = 512

// Client is the HTTP adapter for the remote fleet service, implementing the
// core.FleetAPI port. The service is the single source of truth for all
// vehicle, driver and trip records; this adapter never caches.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ core.FleetAPI = (*Client)(nil)

// NewClient creates a fleet service client from the remote options.
func NewClient(opts *options.RemoteOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Vehicles fetches the full vehicle list.
func (c *Client) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := c.getJSON(ctx, "list vehicles", "/vehicles", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Drivers fetches the driver list, summary fields only.
func (c *Client) Drivers(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := c.getJSON(ctx, "list drivers", "/drivers", &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// Driver fetches a single driver including trip history.
func (c *Client) Driver(ctx context.Context, id string) (*model.Driver, error) {
	var driver model.Driver
	if err := c.getJSON(ctx, "get driver", "/drivers/"+id, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// DriverTrips fetches the trips of a driver.
func (c *Client) DriverTrips(ctx context.Context, id string) ([]model.Trip, error) {
	var trips []model.Trip
	if err := c.getJSON(ctx, "list driver trips", "/trips/driver/"+id, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// ChangeStatus posts a status-change command. A nil return means the
// transition is durable on the server; any non-2xx response or transport
// failure is a failed transition.
func (c *Client) ChangeStatus(ctx context.Context, cmd model.StatusChangeCommand) error {
	const op = "change status"

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode status command: %w", err)
	}

	url := fmt.Sprintf("%s/vehicles/%s/status", c.baseURL, cmd.VehicleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(op, resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func rejection(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &core.ServerRejectionError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
