package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token prefix
const BearerKey string = "Bearer "

// GinContextKey gin context key
const GinContextKey = "gin-context"

// TraceKey trace id header
const TraceKey string = "X-Trace-Id"

// UserKey global user id
const UserKey string = "x-md-uid"

// RoleKey global user role
const RoleKey string = "x-md-role"

// ScopeKey resolved request scope
const ScopeKey string = "x-md-scope"
