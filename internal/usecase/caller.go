package usecase

import "github.com/nlenjibi/storefront/internal/domain/model"

// Caller identifies the authenticated principal performing an operation.
type Caller struct {
	UserID int64
	Role   model.Role
}

// IsAdmin reports whether the caller holds the elevated role.
func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}
