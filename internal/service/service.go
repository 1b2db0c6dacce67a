// Package service contains the task manager business logic. Every operation
// takes the caller Scope resolved by the auth middleware.
package service

import (
	"time"

	"github.com/casdoor/oss"
	"github.com/ncobase/taskmanager/cache"
	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/security/jwt"
)

// Options carries the dependencies of the services.
type Options struct {
	Data             *data.Data
	Logger           *logger.Logger
	Tokens           *jwt.TokenManager
	AdminInviteToken string
	Storage          oss.StorageInterface
	PublicPath       string
	MaxUploadSize    int64
	CacheTTL         time.Duration
	Now              func() time.Time
}

// Service aggregates all business logic services.
type Service struct {
	Task   *TaskService
	User   *UserService
	Auth   *AuthService
	Report *ReportService
	Upload *UploadService
}

// New creates a new service instance with all sub-services initialized.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.StdLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	dashboards := cache.NewCache[structs.Dashboard](opts.Data.Redis(), "taskmanager:dashboard", opts.CacheTTL)

	tasks := NewTaskService(opts.Data, dashboards, opts.Now, opts.Logger)

	return &Service{
		Task:   tasks,
		User:   NewUserService(opts.Data, tasks, opts.Logger),
		Auth:   NewAuthService(opts.Data, opts.Tokens, opts.AdminInviteToken, tasks, opts.Logger),
		Report: NewReportService(opts.Data, opts.Logger),
		Upload: NewUploadService(opts.Storage, opts.PublicPath, opts.MaxUploadSize, opts.Logger),
	}
}
