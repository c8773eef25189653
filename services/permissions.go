package services

import (
	"authors-api/models"
)

// AuthorOrReadOnly allows safe methods to anyone. Unsafe methods need an
// authenticated caller who owns the resource.
func AuthorOrReadOnly(user *models.User, safe bool, ownerID uint) error {
	if safe {
		return nil
	}
	if user == nil {
		return models.ErrorUnauthorized{Message: models.MsgNotAuthenticated}
	}
	if user.PkID != ownerID {
		return models.ErrorForbidden{Message: models.MsgPermissionDenied}
	}
	return nil
}

// RequireStaff restricts an operation to staff accounts.
func RequireStaff(user *models.User) error {
	if user == nil {
		return models.ErrorUnauthorized{Message: models.MsgNotAuthenticated}
	}
	if !user.IsStaff {
		return models.ErrorForbidden{Message: models.MsgPermissionDenied}
	}
	return nil
}
