package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpost-backend/internal/shared/server/middleware"
	"jobpost-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", middleware.RequireIdentity(), meHandler)
}

func meHandler(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{"userId": claims.UserID()}
	if claims.Email != "" {
		response["email"] = claims.Email
	}
	if claims.Name != "" {
		response["name"] = claims.Name
	}
	if claims.Picture != "" {
		response["picture"] = claims.Picture
	}
	respond.JSON(c, http.StatusOK, response)
}
