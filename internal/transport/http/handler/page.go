package handler

import (
	"github.com/gin-gonic/gin"

	"vidshare/internal/transport/http/middleware"
)

// pageData builds the common template context: app name plus the current
// user when one is logged in.
func pageData(c *gin.Context, appName string, extra gin.H) gin.H {
	data := gin.H{"AppName": appName}
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
