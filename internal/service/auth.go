package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/ncobase/taskmanager/crypto"
	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/data/repository"
	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/nanoid"
	"github.com/ncobase/taskmanager/security/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthService handles registration, login, and profiles.
type AuthService struct {
	data        *data.Data
	tokens      *jwt.TokenManager
	inviteToken string
	tasks       *TaskService
	logger      *logger.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(d *data.Data, tokens *jwt.TokenManager, inviteToken string, tasks *TaskService, logger *logger.Logger) *AuthService {
	return &AuthService{
		data:        d,
		tokens:      tokens,
		inviteToken: inviteToken,
		tasks:       tasks,
		logger:      logger,
	}
}

// Register creates an account. The admin role requires the configured invite token.
func (s *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*structs.AuthResponse, error) {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := structs.RoleMember
	if s.inviteToken != "" && req.AdminInviteToken != "" &&
		subtle.ConstantTimeCompare([]byte(req.AdminInviteToken), []byte(s.inviteToken)) == 1 {
		role = structs.RoleAdmin
	}

	u, err := s.data.UserRepo.Create(ctx, &structs.User{
		Name:            req.Name,
		Email:           normalizeEmail(req.Email),
		Password:        hash,
		ProfileImageURL: req.ProfileImageURL,
		Role:            role,
	})
	if err != nil {
		return nil, userWriteError(err)
	}

	s.logger.Info(ctx, "User registered", "user_id", u.ID.Hex(), "role", u.Role)
	return s.respond(u)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *structs.LoginRequest) (*structs.AuthResponse, error) {
	u, err := s.data.UserRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if !crypto.ComparePassword(u.Password, req.Password) {
		return nil, Unauthorized(msgInvalidCredentials)
	}
	return s.respond(u)
}

// Profile returns the account of the caller.
func (s *AuthService) Profile(ctx context.Context, scope structs.Scope) (*structs.User, error) {
	u, err := s.data.UserRepo.FindByID(ctx, scope.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a partial update to the caller's account and reissues the token.
func (s *AuthService) UpdateProfile(ctx context.Context, scope structs.Scope, req *structs.UpdateProfileRequest) (*structs.AuthResponse, error) {
	u, err := s.Profile(ctx, scope)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = normalizeEmail(req.Email)
	}
	if req.ProfileImageURL != "" {
		u.ProfileImageURL = req.ProfileImageURL
	}
	if req.Password != "" {
		hash, err := crypto.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	updated, err := s.data.UserRepo.Update(ctx, u)
	if err != nil {
		return nil, userWriteError(err)
	}
	s.tasks.EvictUserDashboards(ctx, updated.ID)

	s.logger.Info(ctx, "Profile updated", "user_id", updated.ID.Hex())
	return s.respond(updated)
}

// ResolveScope validates a bearer token and loads the caller's current role.
func (s *AuthService) ResolveScope(ctx context.Context, token string) (structs.Scope, error) {
	claims, err := s.tokens.DecodeToken(token)
	if err != nil || !jwt.IsAccessToken(claims) {
		return structs.Scope{}, Unauthorized("Not authorized, token failed")
	}
	oid, err := primitive.ObjectIDFromHex(jwt.GetUserIDFromToken(claims))
	if err != nil {
		return structs.Scope{}, Unauthorized("Not authorized, token failed")
	}

	u, err := s.data.UserRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return structs.Scope{}, Unauthorized("Not authorized, user not found")
		}
		return structs.Scope{}, err
	}
	return structs.Scope{UserID: u.ID, Role: u.Role}, nil
}

func (s *AuthService) respond(u *structs.User) (*structs.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(nanoid.String(), map[string]any{
		"user_id": u.ID.Hex(),
		"role":    u.Role,
	})
	if err != nil {
		return nil, err
	}
	return &structs.AuthResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		Token:           token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
