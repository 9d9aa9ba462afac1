package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AccountRequest is the admin create/update payload
type AccountRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	Username  string `json:"username" binding:"omitempty,min=3,max=30"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" binding:"omitempty,oneof=admin moderator user guest"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive suspended pending"`
	Password  string `json:"password" binding:"omitempty,min=8,max=128"`
}

func (s *Server) listAccounts(c *gin.Context) {
	query := s.db.Model(&Account{}).Order("created_at DESC")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR username LIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var accounts []Account
	if err := query.Find(&accounts).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total := len(accounts)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]gin.H, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, accountJSON(&accounts[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"page":            page,
			"limit":           limit,
			"total":           total,
			"totalPages":      totalPages,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

func (s *Server) getAccount(c *gin.Context) {
	var account Account
	if err := s.db.First(&account, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	c.JSON(http.StatusOK, envelope(accountJSON(&account)))
}

func (s *Server) createAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		fail(c, http.StatusUnprocessableEntity, "email, username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	account := &Account{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Status:       status,
	}
	if err := s.db.Create(account).Error; err != nil {
		fail(c, http.StatusConflict, "Email or username already registered")
		return
	}

	c.JSON(http.StatusCreated, envelope(accountJSON(account)))
}

func (s *Server) updateAccount(c *gin.Context) {
	var account Account
	if err := s.db.First(&account, "id = ?", c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Email != "" {
		account.Email = req.Email
	}
	if req.Username != "" {
		account.Username = req.Username
	}
	if req.FirstName != "" {
		account.FirstName = req.FirstName
	}
	if req.LastName != "" {
		account.LastName = req.LastName
	}
	if req.Role != "" {
		account.Role = req.Role
	}
	if req.Status != "" {
		account.Status = req.Status
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		account.PasswordHash = string(hash)
	}

	if err := s.db.Save(&account).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, envelope(accountJSON(&account)))
}

func (s *Server) deleteAccount(c *gin.Context) {
	result := s.db.Delete(&Account{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) activateAccount(c *gin.Context) {
	s.setAccountStatus(c, "active")
}

func (s *Server) deactivateAccount(c *gin.Context) {
	s.setAccountStatus(c, "inactive")
}

func (s *Server) setAccountStatus(c *gin.Context, status string) {
	result := s.db.Model(&Account{}).Where("id = ?", c.Param("id")).Update("status", status)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to update account status")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Account not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
