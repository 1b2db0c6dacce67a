package jwt

// getPayload extracts payload from token claims
func getPayload(claims map[string]any) (map[string]any, bool) {
	if payload, ok := claims["payload"].(map[string]any); ok {
		return payload, true
	}
	return nil, false
}

// getString safely extracts string value from payload
func getString(payload map[string]any, key string) string {
	if val, ok := payload[key].(string); ok {
		return val
	}
	return ""
}

// GetPayloadString reads a string field of the token payload.
func GetPayloadString(claims map[string]any, key string) string {
	if payload, ok := getPayload(claims); ok {
		return getString(payload, key)
	}
	return ""
}

// GetUserIDFromToken gets the user ID from the token
func GetUserIDFromToken(claims map[string]any) string {
	return GetPayloadString(claims, "user_id")
}

// GetRoleFromToken gets the user role from the token
func GetRoleFromToken(claims map[string]any) string {
	return GetPayloadString(claims, "role")
}

// GetTokenID returns the jti claim.
func GetTokenID(claims map[string]any) string {
	if jti, ok := claims["jti"].(string); ok {
		return jti
	}
	return ""
}

// IsAccessToken reports whether the token was issued as an access token.
func IsAccessToken(claims map[string]any) bool {
	sub, _ := claims["sub"].(string)
	return sub == "access"
}
