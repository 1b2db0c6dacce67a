package structs

import "go.mongodb.org/mongo-driver/bson/primitive"

// Scope is the resolved authority of the caller of one request.
type Scope struct {
	UserID primitive.ObjectID
	Role   string
}

// AdminScope returns the scope of an administrator.
func AdminScope(id primitive.ObjectID) Scope {
	return Scope{UserID: id, Role: RoleAdmin}
}

// MemberScope returns the scope of a member.
func MemberScope(id primitive.ObjectID) Scope {
	return Scope{UserID: id, Role: RoleMember}
}

// IsAdmin reports whether the caller administers every task.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanView reports whether the caller may read t and update its progress.
func (s Scope) CanView(t *Task) bool {
	return s.IsAdmin() || t.IsAssignee(s.UserID)
}

// CanDelete reports whether the caller may delete t.
func (s Scope) CanDelete(t *Task) bool {
	return s.IsAdmin() || (!t.CreatedBy.IsZero() && t.CreatedBy == s.UserID)
}
