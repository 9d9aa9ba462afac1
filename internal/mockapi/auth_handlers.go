package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Username             string `json:"username" binding:"required,min=3,max=30"`
	Password             string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
	FirstName            string `json:"firstName" binding:"required"`
	LastName             string `json:"lastName" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token being exchanged
type RefreshRequest struct {
	Token string `json:"refreshToken" binding:"required"`
}

func accountJSON(a *Account) gin.H {
	return gin.H{
		"id":            a.ID,
		"email":         a.Email,
		"username":      a.Username,
		"firstName":     a.FirstName,
		"lastName":      a.LastName,
		"role":          a.Role,
		"status":        a.Status,
		"emailVerified": a.EmailVerified,
		"createdAt":     a.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) issueTokenPair(a *Account, now time.Time) (access, refresh string, err error) {
	access, err = issueAccessToken(s.secret, a, now)
	if err != nil {
		return "", "", err
	}

	refresh, err = newOpaqueToken()
	if err != nil {
		return "", "", err
	}

	record := &RefreshToken{
		Token:     refresh,
		AccountID: a.ID,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.db.Create(record).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// register creates an account and answers with the FLAT token shape
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	account := &Account{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "user",
		Status:       "active",
	}
	if err := s.db.Create(account).Error; err != nil {
		fail(c, http.StatusConflict, "Email or username already registered")
		return
	}

	access, refresh, err := s.issueTokenPair(account, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue tokens")
		fail(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"user":         accountJSON(account),
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    int(accessTokenTTL.Seconds()),
	})
}

// login answers with the NESTED tokens shape
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var account Account
	if err := s.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if account.Status != "active" {
		fail(c, http.StatusForbidden, "Account is not active")
		return
	}

	now := time.Now()
	access, refresh, err := s.issueTokenPair(&account, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue tokens")
		fail(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	s.db.Model(&account).Update("last_login_at", now)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    accountJSON(&account),
		"tokens": gin.H{
			"accessToken":  access,
			"refreshToken": refresh,
			"tokenType":    "Bearer",
			"expiresIn":    int(accessTokenTTL.Seconds()),
		},
	})
}

// refresh rotates the refresh token and issues a new access token
func (s *Server) refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var record RefreshToken
	err := s.db.Where("token = ?", req.Token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && record.ExpiresAt.Before(time.Now())) {
		fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to look up refresh token")
		return
	}

	var account Account
	if err := s.db.First(&account, "id = ?", record.AccountID).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Account no longer exists")
		return
	}

	s.db.Delete(&record)

	access, refresh, err := s.issueTokenPair(&account, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue tokens")
		fail(c, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    int(accessTokenTTL.Seconds()),
	})
}

// logout invalidates the presented refresh token, fire-and-forget
func (s *Server) logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Token != "" {
		s.db.Where("token = ?", req.Token).Delete(&RefreshToken{})
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) me(c *gin.Context) {
	claims := currentClaims(c)

	var account Account
	if err := s.db.First(&account, "id = ?", claims.Subject).Error; err != nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": accountJSON(&account)})
}
