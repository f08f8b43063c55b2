package handlers

import "github.com/gin-gonic/gin"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// userID returns the external user id set by the auth middleware, or ""
// for anonymous requests.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
