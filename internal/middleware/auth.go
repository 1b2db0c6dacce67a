// Package middleware provides the gin middleware of the task manager API.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/consts"
	"github.com/ncobase/taskmanager/ctxutil"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/net/resp"
)

// ScopeResolver turns a bearer token into the caller Scope.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, token string) (structs.Scope, error)
}

// Protect requires a valid bearer token and stores the resolved Scope.
func Protect(resolver ScopeResolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(consts.AuthorizationKey)
		if !strings.HasPrefix(header, consts.BearerKey) {
			resp.Fail(c.Writer, resp.UnAuthorized("Not authorized, no token"))
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, consts.BearerKey))

		ctx := c.Request.Context()
		scope, err := resolver.ResolveScope(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				log.Warn(ctx, "Token rejected", "error", err)
				resp.Fail(c.Writer, resp.UnAuthorized(err.Error()))
			} else {
				log.Error(ctx, "Failed to resolve caller", "error", err)
				resp.Fail(c.Writer, resp.InternalServer("Server Error").WithError(err))
			}
			c.Abort()
			return
		}

		c.Set(consts.ScopeKey, scope)
		ctx = ctxutil.SetUserID(ctx, scope.UserID.Hex())
		ctx = ctxutil.SetRole(ctx, scope.Role)
		c.Request = c.Request.WithContext(ctx)

		log.Debug(ctx, "User authenticated", "user_id", scope.UserID.Hex(), "role", scope.Role)
		c.Next()
	}
}

// AdminOnly rejects callers whose Scope is not an admin. It runs after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := GetScope(c)
		if !ok {
			resp.Fail(c.Writer, resp.UnAuthorized("Not authorized"))
			c.Abort()
			return
		}
		if !scope.IsAdmin() {
			resp.Fail(c.Writer, resp.Forbidden("Access denied. Admin only."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetScope returns the Scope stored by Protect.
func GetScope(c *gin.Context) (structs.Scope, bool) {
	v, exists := c.Get(consts.ScopeKey)
	if !exists {
		return structs.Scope{}, false
	}
	scope, ok := v.(structs.Scope)
	return scope, ok
}
