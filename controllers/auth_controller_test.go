package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/services"
)

func testConfig() *config.Config {
	return &config.Config{
		GoEnv:       "test",
		JWTSecret:   "test-secret",
		JWTIssuer:   "https://studio-api.test/",
		JWTAudience: "studio-admin",
	}
}

// mockAuthMiddleware injects an authenticated session into the Gin context,
// bypassing token validation
func mockAuthMiddleware(userID, token string, expiry time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: userID,
				Expiry:  expiry.Unix(),
			},
		})
		c.Set("access_token", token)
		c.Next()
	}
}

func seedAdmin(t *testing.T, password string) models.AdminUser {
	t.Helper()

	admin := models.AdminUser{Name: "Srini", Email: "srini@example.com"}
	if err := admin.SetPassword(password); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := config.GetDB().Create(&admin).Error; err != nil {
		t.Fatalf("Failed to seed admin user: %v", err)
	}
	return admin
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(testConfig())
	admin := seedAdmin(t, "s3cret-password")

	router := setupTestRouter()
	router.POST("/auth/login", Login)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successful login",
			requestBody: map[string]interface{}{
				"email":    admin.Email,
				"password": "s3cret-password",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				tokenStr := data["token"].(string)
				assert.NotEmpty(t, tokenStr)

				// Token must be verifiable with the shared secret
				parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
					return []byte("test-secret"), nil
				})
				assert.NoError(t, err)
				assert.True(t, parsed.Valid)

				claims := parsed.Claims.(jwt.MapClaims)
				assert.Equal(t, fmt.Sprint(admin.ID), claims["sub"])
				assert.Equal(t, admin.Email, claims["email"])

				user := data["user"].(map[string]interface{})
				assert.Equal(t, admin.Email, user["email"])
				_, hasHash := user["password_hash"]
				assert.False(t, hasHash, "password hash must never be serialized")
			},
		},
		{
			name: "Wrong password",
			requestBody: map[string]interface{}{
				"email":    admin.Email,
				"password": "wrong",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name: "Unknown email gets the same error",
			requestBody: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "s3cret-password",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name: "Missing password",
			requestBody: map[string]interface{}{
				"email": admin.Email,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Malformed email",
			requestBody: map[string]interface{}{
				"email":    "not-an-email",
				"password": "s3cret-password",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(testConfig())

	blacklist := services.NewMemoryTokenBlacklist()
	blacklist.SetAsBlacklistForTesting()

	router := setupTestRouter()
	router.POST("/auth/logout",
		mockAuthMiddleware("1", "session-token-abc", time.Now().Add(time.Hour)),
		Logout,
	)

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, blacklist.IsRevoked(req.Context(), "session-token-abc"))
	assert.False(t, blacklist.IsRevoked(req.Context(), "some-other-token"))
}

func TestGetSession(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	config.SetConfig(testConfig())
	admin := seedAdmin(t, "s3cret-password")

	t.Run("returns the signed-in profile", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/session",
			mockAuthMiddleware(fmt.Sprint(admin.ID), "session-token-abc", time.Now().Add(time.Hour)),
			GetSession,
		)

		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, admin.Email, data["email"])
		assert.Equal(t, admin.Name, data["name"])
	})

	t.Run("unknown subject", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/session",
			mockAuthMiddleware("99999", "session-token-abc", time.Now().Add(time.Hour)),
			GetSession,
		)

		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric subject never reaches the database", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/session",
			mockAuthMiddleware("1 OR 1=1", "session-token-abc", time.Now().Add(time.Hour)),
			GetSession,
		)

		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
