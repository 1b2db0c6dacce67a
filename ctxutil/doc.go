// Package ctxutil stores request-scoped values (trace id, user id, role)
// on a context.Context, mirroring them onto the *gin.Context when one is
// embedded so handlers and middleware see the same values.
//
//	ctx = ctxutil.SetUserID(ctx, id)
//	uid := ctxutil.GetUserID(ctx)
package ctxutil
