package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Endpoint just pings the server
// @Description Returns "pong" and the server time in UTC, handy for checking client clock skew
// @Tags test
// @Produce json
// @Success 200 {object} object{message=string,time=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong", "time": time.Now().UTC()})
}
