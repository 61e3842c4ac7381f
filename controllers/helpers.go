package controllers

import (
	"strconv"
	"time"

	"LoveForTennis/middleware"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/utils/apperror"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidID   = apperror.Validation("Invalid id.")
	errInvalidBody = apperror.Validation("Invalid request body.")
	errUserGone    = apperror.NotFound("User not found.")
	errInvalidTime = apperror.Validation("Invalid time range, use RFC 3339 'from' and 'to' query parameters.")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// fail hands err to utils.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		fail(c, errInvalidID)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, errInvalidBody)
		return false
	}
	return true
}

// timeRange reads ?from=&to= and defaults to the next seven days from
// the start of today (UTC).
func timeRange(c *gin.Context) (time.Time, time.Time, bool) {
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fail(c, errInvalidTime)
			return from, to, false
		}
		from = t
		if c.Query("to") == "" {
			to = from.AddDate(0, 0, 7)
		}
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fail(c, errInvalidTime)
			return from, to, false
		}
		to = t
	}
	return from, to, true
}

func hasAnyRole(c *gin.Context, roles ...string) bool {
	for _, held := range middleware.CurrentRoles(c) {
		for _, r := range roles {
			if held == r {
				return true
			}
		}
	}
	return false
}

// canManage reports whether the current user may act on data owned by
// ownerID. Admins and board members manage everything.
func canManage(c *gin.Context, ownerID string) bool {
	return middleware.CurrentUserID(c) == ownerID || hasAnyRole(c, models.RoleAdmin, models.RoleBoardMember)
}
