// Package resp writes JSON success and failure responses.
//
// Success bodies are the payload itself; failure bodies are
// {"code": <ecode>, "message": "...", "error": "...", "errors": ...}.
//
//	resp.Success(c.Writer, task)
//	resp.WithStatusCode(c.Writer, http.StatusCreated, gin.H{"task": task})
//	resp.Fail(c.Writer, resp.NotFound("Task not found"))
package resp
