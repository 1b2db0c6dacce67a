package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/consts"
	"github.com/ncobase/taskmanager/ctxutil"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubResolver map[string]structs.Scope

func (r stubResolver) ResolveScope(_ context.Context, token string) (structs.Scope, error) {
	scope, ok := r[token]
	if !ok {
		return structs.Scope{}, service.Unauthorized("Not authorized, token failed")
	}
	return scope, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(resolver ScopeResolver) *gin.Engine {
	r := gin.New()
	r.Use(Trace(), CORS("http://localhost:5173"))
	protected := r.Group("/", Protect(resolver, logger.Discard()))
	protected.GET("/me", func(c *gin.Context) {
		scope, _ := GetScope(c)
		c.String(http.StatusOK, scope.Role+":"+ctxutil.GetUserID(c.Request.Context()))
	})
	protected.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(consts.AuthorizationKey, consts.BearerKey+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectAndAdminOnly(t *testing.T) {
	member := structs.MemberScope(primitive.NewObjectID())
	admin := structs.AdminScope(primitive.NewObjectID())
	r := newEngine(stubResolver{"m": member, "a": admin})

	if w := do(r, http.MethodGet, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
	if w := do(r, http.MethodGet, "/me", "bad"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}

	w := do(r, http.MethodGet, "/me", "m")
	if w.Code != http.StatusOK || w.Body.String() != "member:"+member.UserID.Hex() {
		t.Errorf("member /me = %d %q", w.Code, w.Body.String())
	}

	if w := do(r, http.MethodGet, "/admin", "m"); w.Code != http.StatusForbidden {
		t.Errorf("member /admin status = %d, want 403", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin", "a"); w.Code != http.StatusOK {
		t.Errorf("admin /admin status = %d, want 200", w.Code)
	}
}

func TestTraceAndCORS(t *testing.T) {
	r := newEngine(stubResolver{})

	w := do(r, http.MethodOptions, "/me", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != corsMethods {
		t.Errorf("Allow-Methods = %q", got)
	}
	if w.Header().Get(consts.TraceKey) == "" {
		t.Error("trace id header not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(consts.TraceKey, "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(consts.TraceKey); got != "abc" {
		t.Errorf("trace id = %q, want the incoming one", got)
	}
}
