// Package ecode defines the business error codes carried in failure bodies
// and their default messages.
//
//	ecode.Text(ecode.NothingFound) // "Not found"
//	ecode.ToHTTPStatus(ecode.AccessDenied) // 403
//
// The message helpers build short field messages for validation errors:
//
//	ecode.FieldIsRequired("title") // "title required"
package ecode
