package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/net/resp"
)

// AuthHandler handles registration, login, profiles and image uploads.
type AuthHandler struct {
	svc    *service.AuthService
	upload *service.UploadService
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService, upload *service.UploadService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		upload: upload,
		logger: logger,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req structs.RegisterRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, res)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req structs.LoginRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), scope(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, user)
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req structs.UpdateProfileRequest
	if !bind(c, h.logger, &req) {
		return
	}

	res, err := h.svc.UpdateProfile(c.Request.Context(), scope(c), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, res)
}

// UploadImage handles POST /auth/upload-image with a multipart "image" field.
func (h *AuthHandler) UploadImage(c *gin.Context) {
	if limit := h.upload.MaxSize(); limit > 0 {
		// room for the multipart envelope
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest("No file uploaded"))
		return
	}
	file, err := fh.Open()
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	defer file.Close()

	path, err := h.upload.UploadImage(c.Request.Context(), fh.Filename, fh.Size, file)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, map[string]string{"imageUrl": baseURL(c) + path})
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
