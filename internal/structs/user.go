package structs

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is an account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	ProfileImageURL string             `bson:"profileImageUrl" json:"profileImageUrl"`
	Role            string             `bson:"role" json:"role"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Summary returns the fields exposed on populated task assignees.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// UserSummary is a populated task assignee.
type UserSummary struct {
	ID              primitive.ObjectID `json:"_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	ProfileImageURL string             `json:"profileImageUrl"`
}

// StatusCounts holds per-status task counts of one user.
type StatusCounts struct {
	Pending    int64 `json:"pendingTasks"`
	InProgress int64 `json:"inProgressTasks"`
	Completed  int64 `json:"completedTasks"`
}

// Total returns the sum of all buckets.
func (c StatusCounts) Total() int64 {
	return c.Pending + c.InProgress + c.Completed
}

// Add increments the bucket of status.
func (c *StatusCounts) Add(status string, n int64) {
	switch status {
	case StatusPending:
		c.Pending += n
	case StatusInProgress:
		c.InProgress += n
	case StatusCompleted:
		c.Completed += n
	}
}

// UserWithCounts is a user row of GET /users.
type UserWithCounts struct {
	User
	StatusCounts
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body of PUT /auth/profile.
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"omitempty,min=6"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// UpdateUserRequest is the body of PUT /users/:id.
type UpdateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Role            string `json:"role" binding:"omitempty,oneof=admin member"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// AuthResponse is a user with a freshly issued token.
type AuthResponse struct {
	ID              primitive.ObjectID `json:"_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Role            string             `json:"role"`
	ProfileImageURL string             `json:"profileImageUrl"`
	Token           string             `json:"token"`
}
