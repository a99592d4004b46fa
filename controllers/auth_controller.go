package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/uxdsrini/studio-api/config"
	"github.com/uxdsrini/studio-api/middleware"
	"github.com/uxdsrini/studio-api/models"
	"github.com/uxdsrini/studio-api/services"
)

// sessionDuration is how long a signed-in admin session token stays valid
const sessionDuration = 72 * time.Hour

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - email/password sign-in for admins
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var user models.AdminUser
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same response as a wrong password so accounts can't be enumerated
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid email or password",
			},
		})
		return
	}

	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid email or password",
			},
		})
		return
	}

	cfg := config.GetConfig()
	token, expiresAt, err := signSessionToken(cfg, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to create session token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":      token,
			"expires_at": expiresAt.Unix(),
			"user":       user,
		},
	})
}

// Logout handles POST /api/v1/auth/logout - revokes the current session
// token for the remainder of its lifetime
func Logout(c *gin.Context) {
	token, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract session token",
			},
		})
		return
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract token claims",
			},
		})
		return
	}

	ttl := sessionDuration
	if claims.RegisteredClaims.Expiry > 0 {
		ttl = time.Until(time.Unix(claims.RegisteredClaims.Expiry, 0))
	}

	if err := services.GetTokenBlacklist().Revoke(c.Request.Context(), token, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOGOUT_FAILED",
				"message": "Failed to sign out",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out successfully",
	})
}

// GetSession handles GET /api/v1/auth/session - returns the signed-in
// admin's profile. Clients poll this to observe session expiry or sign-out.
func GetSession(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	// The subject claim is a decimal user id; anything else never matches
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Admin profile not found",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.AdminUser
	if err := db.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Admin profile not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// signSessionToken issues an HS256 session token for an admin user
func signSessionToken(cfg *config.Config, user *models.AdminUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(sessionDuration)

	claims := jwt.MapClaims{
		"iss":   cfg.JWTIssuer,
		"aud":   cfg.JWTAudience,
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"name":  user.Name,
		"email": user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
