package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/throttle"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	key   string
	event services.Event
}

// recordingPublisher captures published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	var event services.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{key: routingKey, event: event})
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.key)
	}
	return keys
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testOptions(t *testing.T, db *gorm.DB) Options {
	t.Helper()
	settings := viper.New()
	settings.Set(services.KeyJWTSecret, "test_jwt_secret")
	settings.Set(services.KeyJWTIssuer, "jobboard")
	settings.Set(services.KeyJWTAudience, "jobboard-clients")
	settings.Set(services.KeyJWTExpiryHours, "1")
	return Options{
		Config: &config.Config{
			Auth: config.AuthConfig{MaxLoginAttempts: services.DefaultMaxLoginAttempts},
			Jobs: config.JobsConfig{Eligibility: models.LegacyEligibility},
		},
		Settings:  settings,
		DB:        db,
		LogOutput: io.Discard,
	}
}

func post(t *testing.T, app *fiber.App, path, token string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func registerEmployer(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := post(t, app, "/api/v1/auth/register", "", map[string]interface{}{
		"id": 42, "first_name": "Grace", "last_name": "Hopper", "email": "grace@example.com",
		"password": "Str0ngPass", "phone_number": "555-0100", "address": "1 Navy Way",
		"role": models.RoleEmployer, "company_name": "Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = post(t, app, "/api/v1/auth/login", "", map[string]string{"email": "grace@example.com", "password": "Str0ngPass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body["token"]
}

func TestHealth(t *testing.T) {
	db := testDB(t)
	app := New(testOptions(t, db))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := New(testOptions(t, testDB(t)))

	for _, path := range []string{"/api/v1/jobs", "/api/v1/applications", "/api/v1/jobseekers", "/api/v1/employers"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestWritesPublishEvents(t *testing.T) {
	publisher := &recordingPublisher{}
	opts := testOptions(t, testDB(t))
	opts.Events = publisher
	app := New(opts)

	token := registerEmployer(t, app)
	resp := post(t, app, "/api/v1/jobs", token, map[string]interface{}{
		"id": 1, "title": "Backend Engineer", "description": "Build services", "requirements": "Go",
		"location": "Remote", "salary": 100000, "employer_id": 42,
		"application_deadline": time.Now().Add(time.Hour).UTC().Format(time.RFC3339), "status": "Inactive",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, []string{"employer.created", "job.created"}, publisher.keys())
	assert.Equal(t, 1, publisher.events[1].event.ID)
}

func TestLoginAttemptsCountedInRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	counter, err := throttle.NewRedisCounter(srv.Addr(), "", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = counter.Close() })

	opts := testOptions(t, testDB(t))
	opts.Counter = counter
	app := New(opts)
	registerEmployer(t, app)

	for i := 0; i < 2; i++ {
		resp := post(t, app, "/api/v1/auth/login", "", map[string]string{"email": "grace@example.com", "password": "WrongPass1"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	resp := post(t, app, "/api/v1/auth/login", "", map[string]string{"email": "grace@example.com", "password": "Str0ngPass"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	resp.Body.Close()

	keys := srv.Keys()
	require.Len(t, keys, 1)
	value, err := srv.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, "4", value)
}
