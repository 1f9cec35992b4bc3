package router

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/inesh111/pj-motors/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:         "test",
		Port:        "0",
		DatabaseURL: ":memory:",
		UploadsDir:  t.TempDir(),
	}
}

func TestCreateApp_CarLifecycle(t *testing.T) {
	app, db, rdb, err := CreateApp(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Nil(t, rdb)

	body, _ := json.Marshal(map[string]interface{}{
		"chassisCode":           "ZVW51-0001",
		"make":                  "Toyota",
		"model":                 "Prius",
		"totalPurchasePriceAUD": 18000,
	})
	req := httptest.NewRequest("POST", "/cars", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var car map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&car))
	assert.Equal(t, "JAPAN", car["status"])
	assert.Nil(t, car["profit"])

	// The trace header is set by the middleware chain.
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
}

func TestCreateApp_HealthEndpoint(t *testing.T) {
	app, _, _, err := CreateApp(testConfig(t))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "pj-motors-api", out["service"])
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"].(map[string]interface{})["status"])
}
