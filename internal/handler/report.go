package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/internal/report"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/net/resp"
)

// ReportHandler streams spreadsheet exports.
type ReportHandler struct {
	svc    *service.ReportService
	logger *logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(svc *service.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		svc:    svc,
		logger: logger,
	}
}

// ExportTasks handles GET /reports/export/tasks.
func (h *ReportHandler) ExportTasks(c *gin.Context) {
	h.send(c, h.svc.ExportTasks)
}

// ExportUsers handles GET /reports/export/users.
func (h *ReportHandler) ExportUsers(c *gin.Context) {
	h.send(c, h.svc.ExportUsers)
}

func (h *ReportHandler) send(c *gin.Context, build func(ctx context.Context) (*service.Export, error)) {
	export, err := build(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := resp.Attachment(c.Writer, export.Filename, report.ContentType, export.Body); err != nil {
		h.logger.Error(c.Request.Context(), "failed to stream report", "file", export.Filename, "error", err)
	}
}
