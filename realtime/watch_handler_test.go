package realtime

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/services"
)

func setupWatchServer(t *testing.T) (*httptest.Server, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		GoEnv:       "test",
		JWTSecret:   "test-secret",
		JWTIssuer:   "https://studio-api.test/",
		JWTAudience: "studio-admin",
	}
	config.SetConfig(cfg)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Appointment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)

	services.SetTokenBlacklist(services.NewMemoryTokenBlacklist())
	SetHub(NewHub())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/admin/appointments/watch", HandleAppointmentsWatch)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, db, cfg
}

func signWatchToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss": cfg.JWTIssuer,
		"aud": cfg.JWTAudience,
		"sub": "1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func TestAppointmentsWatchRejectsBadTokens(t *testing.T) {
	server, _, _ := setupWatchServer(t)

	for _, token := range []string{"", "not.a.jwt"} {
		url := "ws" + strings.TrimPrefix(server.URL, "http") +
			"/api/v1/admin/appointments/watch?token=" + token
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		assert.Error(t, err)
		if resp != nil {
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		}
	}
}

func TestAppointmentsWatchRejectsPlainHTTPRequests(t *testing.T) {
	server, _, cfg := setupWatchServer(t)
	token := signWatchToken(t, cfg)

	// Valid token but no upgrade headers: gorilla's error response stands alone
	resp, err := http.Get(server.URL + "/api/v1/admin/appointments/watch?token=" + token)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), `"success"`)
}

func TestAppointmentsWatchDeliversSnapshots(t *testing.T) {
	server, db, cfg := setupWatchServer(t)

	db.Create(&models.Appointment{
		Name: "Alice", Email: "alice@example.com",
		Date: "2026-09-01", Time: "09:00 AM", Status: models.StatusPending,
		CreatedAt: time.Now().Add(-2 * time.Minute),
	})
	db.Create(&models.Appointment{
		Name: "Bob", Email: "bob@example.com",
		Date: "2026-09-02", Time: "10:00 AM", Status: models.StatusPending,
		CreatedAt: time.Now().Add(-time.Minute),
	})

	token := signWatchToken(t, cfg)
	conn := dialWebsocket(t, server, "/api/v1/admin/appointments/watch?token="+token)
	defer conn.Close()

	// Initial snapshot, newest first
	var event appointmentsEvent
	readJSONFrame(t, conn, &event)
	assert.Equal(t, "appointments", event.Type)
	assert.Len(t, event.Appointments, 2)
	assert.Equal(t, "Bob", event.Appointments[0].Name)
	assert.Equal(t, "Alice", event.Appointments[1].Name)

	// A mutation pushes a fresh snapshot to the open socket
	db.Create(&models.Appointment{
		Name: "Carol", Email: "carol@example.com",
		Date: "2026-09-03", Time: "11:00 AM", Status: models.StatusPending,
	})
	PublishAppointments(db)

	readJSONFrame(t, conn, &event)
	assert.Equal(t, "appointments", event.Type)
	assert.Len(t, event.Appointments, 3)
	assert.Equal(t, "Carol", event.Appointments[0].Name)
}
