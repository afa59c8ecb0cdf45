package api

import (
	"net/http" // HTTP status codes

	"digiwallet/internal/domain"  // Domain models
	"digiwallet/internal/service" // Service inputs

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupRequest represents a signup request
type SignupRequest struct {
	Username string      `json:"username" binding:"required"` // Unique username
	FullName string      `json:"fullName"`                    // Display name
	Email    string      `json:"email" binding:"required"`    // Contact email
	Role     domain.Role `json:"role"`                        // Optional, USER by default
}

// SignupHandler registers a new user
func SignupHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		u, err := users.CreateUser(c.Request.Context(), service.SignupInput{
			Username: req.Username, // Username
			FullName: req.FullName, // Display name
			Email:    req.Email,    // Email
			Role:     req.Role,     // Role
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u) // Return created user
	}
}

// GetUserHandler returns a user by id
func GetUserHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		u, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// GetUserByUsernameHandler returns a user by username
func GetUserByUsernameHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetUserByUsername(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// ListUsersHandler returns all users
func ListUsersHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ToggleUserStatusHandler flips a user between ACTIVE and INACTIVE
func ToggleUserStatusHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		u, err := users.ToggleUserStatus(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
