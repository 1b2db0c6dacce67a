// Package consts defines header names, context keys and character sets
// shared by the taskmanager packages.
//
//	ctx = ctxutil.SetValue(ctx, consts.UserKey, "665f...")
//	token := strings.TrimPrefix(c.GetHeader(consts.AuthorizationKey), consts.BearerKey)
package consts
