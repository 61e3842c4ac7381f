package middleware

import (
	"strings"

	"LoveForTennis/services/identity"
	"LoveForTennis/utils/apperror"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session and context keys.
const (
	SessionUserKey  = "user"
	SessionRolesKey = "roles"

	ContextUserID = "userID"
	ContextRoles  = "roles"
)

var (
	ErrUnauthorized = apperror.Auth("Authentication required.")
	ErrForbidden    = apperror.Forbidden("You do not have permission to perform this action.")
)

func abort(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.Status, gin.H{"error": err.Message, "code": err.Code})
}

// StartSession stores the signed-in user in the session cookie.
func StartSession(c *gin.Context, userID string, roles []string) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, userID)
	session.Set(SessionRolesKey, strings.Join(roles, ","))
	return session.Save()
}

func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// AuthRequired accepts either the session cookie or a Bearer access token.
// On success the user id and roles are stored in the gin context.
func AuthRequired(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			claims, err := provider.ParseAccessToken(strings.TrimPrefix(h, "Bearer "))
			if err != nil || claims.UserID == "" {
				abort(c, ErrUnauthorized)
				return
			}
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRoles, claims.Role)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, _ := session.Get(SessionUserKey).(string)
		if userID == "" {
			abort(c, ErrUnauthorized)
			return
		}
		var roles []string
		if raw, _ := session.Get(SessionRolesKey).(string); raw != "" {
			roles = strings.Split(raw, ",")
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextRoles, roles)
		c.Next()
	}
}

// RequireRole lets the request through when the user holds any of roles.
// It must run after AuthRequired.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		for _, r := range CurrentRoles(c) {
			if _, ok := allowed[r]; ok {
				c.Next()
				return
			}
		}
		abort(c, ErrForbidden)
	}
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func CurrentRoles(c *gin.Context) []string {
	return c.GetStringSlice(ContextRoles)
}
