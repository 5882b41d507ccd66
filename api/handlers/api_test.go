package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
)

var a App

func newTestApp(t *testing.T) {
	t.Helper()
	a = App{Config: config.Config{JWTSecret: "test-secret", DefaultZoom: config.DefaultZoom}}
	require.NoError(t, a.Initialize())
}

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	newTestApp(t)
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	newTestApp(t)
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestInitializeRequiresJWTSecret(t *testing.T) {
	bad := App{Config: config.Config{}}
	require.Error(t, bad.Initialize())
}

func TestProtectedRoutesRejectAnonymousCallers(t *testing.T) {
	newTestApp(t)
	for _, route := range []string{"/api/v1/encuestas", "/api/v1/overlay", "/api/v1/metrics/summary"} {
		req, _ := http.NewRequest("GET", route, nil)
		response := executeRequest(req)
		checkResponseCode(t, http.StatusUnauthorized, response.Code)
	}
}

func TestTokenFlowGrantsAccess(t *testing.T) {
	newTestApp(t)
	require.NoError(t, a.Store.SeedUsers([]models.UserAccount{
		{ID: "u1", Username: "admin", Name: "Admin", Secret: "s3cret", Role: models.RoleAdmin, Zone: models.ZoneAll, Active: true},
	}))

	// exchange basic credentials for a bearer token
	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("admin", "s3cret")
	response := executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)

	var tokenResp map[string]string
	require.NoError(t, json.NewDecoder(response.Body).Decode(&tokenResp))
	require.NotEmpty(t, tokenResp["token"])

	req, _ = http.NewRequest("GET", "/api/v1/encuestas", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResp["token"])
	response = executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
}

func TestTokenFlowRejectsBadCredentials(t *testing.T) {
	newTestApp(t)
	require.NoError(t, a.Store.SeedUsers([]models.UserAccount{
		{ID: "u1", Username: "admin", Name: "Admin", Secret: "s3cret", Role: models.RoleAdmin, Zone: models.ZoneAll, Active: true},
	}))

	req, _ := http.NewRequest("POST", "/api/v1/auth/token", nil)
	req.SetBasicAuth("admin", "wrong")
	response := executeRequest(req)
	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestLoginRouteIsOpen(t *testing.T) {
	newTestApp(t)
	require.NoError(t, a.Store.SeedUsers([]models.UserAccount{
		{ID: "u1", Username: "admin", Name: "Admin", Secret: "s3cret", Role: models.RoleAdmin, Zone: models.ZoneAll, Active: true},
	}))

	body := strings.NewReader(`{"username":"admin","password":"s3cret"}`)
	req, _ := http.NewRequest("POST", "/api/v1/login", body)
	response := executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)

	var session models.Session
	require.NoError(t, json.NewDecoder(response.Body).Decode(&session))
	require.NotEmpty(t, session.Token)
}
