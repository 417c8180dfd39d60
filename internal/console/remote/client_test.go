package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&options.RemoteOptions{BaseURL: baseURL, Timeout: 2 * time.Second})
}

func TestVehiclesDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vehicles", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"v1","name":"Toyota Camry","plate":"A123BC","mileage":25000,"status":"available"},
			{"id":"v2","name":"BMW 5 Series","plate":"B456DE","mileage":50000,"status":"busy","driver":"Ivan","driverId":"d1"}
		]`))
	}))
	defer srv.Close()

	vehicles, err := newTestClient(srv.URL + "/api").Vehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, model.StatusAvailable, vehicles[0].Status)
	assert.Equal(t, "Ivan", vehicles[1].Driver)
	require.NotNil(t, vehicles[1].DriverID)
	assert.Equal(t, "d1", *vehicles[1].DriverID)
}

func TestVehiclesRejectsUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"v1","name":"Toyota Camry","status":"idle"}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Vehicles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idle")
}

func TestChangeStatusWireFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	driverID := "d1"
	cmd := model.StatusChangeCommand{
		VehicleID: "v1",
		Status:    model.StatusBusy,
		Driver:    "Ivan",
		DriverID:  &driverID,
	}
	require.NoError(t, newTestClient(srv.URL).ChangeStatus(context.Background(), cmd))

	assert.Equal(t, "/vehicles/v1/status", gotPath)
	// The body carries exactly the three command fields; the vehicle ID
	// travels in the path only.
	assert.Equal(t, map[string]any{
		"status":   "busy",
		"driver":   "Ivan",
		"driverId": "d1",
	}, gotBody)
}

func TestChangeStatusRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "vehicle is locked", http.StatusConflict)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).ChangeStatus(context.Background(), model.StatusChangeCommand{
		VehicleID: "v1",
		Status:    model.StatusAvailable,
	})

	var rejection *core.ServerRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusConflict, rejection.StatusCode)
	assert.Equal(t, "vehicle is locked", rejection.Body)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Vehicles(context.Background())
	var netErr *core.NetworkError
	require.ErrorAs(t, err, &netErr)

	err = client.ChangeStatus(context.Background(), model.StatusChangeCommand{VehicleID: "v1", Status: model.StatusAvailable})
	require.ErrorAs(t, err, &netErr)
}

func TestDriverAndTripsPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/drivers/d1":
			_, _ = w.Write([]byte(`{"id":"d1","name":"Ivan","rating":4.8}`))
		case "/trips/driver/d1":
			_, _ = w.Write([]byte(`[{"id":"t1","vehicle":"Toyota Camry","date":"2024-03-01","earnings":42.5,"distance":12.3}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	driver, err := client.Driver(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", driver.Name)

	trips, err := client.DriverTrips(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Toyota Camry", trips[0].Vehicle)
	assert.Equal(t, 42.5, trips[0].Earnings)

	assert.Equal(t, []string{"/drivers/d1", "/trips/driver/d1"}, paths)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/drivers", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL + "/api/").Drivers(context.Background())
	require.NoError(t, err)
}
