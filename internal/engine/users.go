package engine

import (
	"errors"

	"github.com/julianstephens/cotask/internal/models"
	"github.com/julianstephens/cotask/internal/storage"
)

// EnsureUser upserts the account row for an authenticated principal. Called
// on every authenticated request so user rows exist before any entity write.
func (e *Engine) EnsureUser(id, email, name string) error {
	if id == "" {
		return errUnauthorized()
	}

	user := models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.EnsureUser(user); err != nil {
		return errStore("ensure user", err)
	}
	return nil
}

// GetProfile returns the user's account record.
func (e *Engine) GetProfile(userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, errUnauthorized()
	}

	user, err := e.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, errNotFound("user")
		}
		return models.User{}, errStore("fetch user", err)
	}
	return user, nil
}

// SetAvatar updates the user's display name and avatar. Only predefined
// avatars are accepted; arbitrary uploads are rejected at validation.
func (e *Engine) SetAvatar(userID, name, avatarType, avatarPath string) (models.User, error) {
	if userID == "" {
		return models.User{}, errUnauthorized()
	}
	if name == "" {
		return models.User{}, errValidationf("name is required")
	}
	if avatarType != "predefined" {
		return models.User{}, errValidationf("only predefined avatars are supported")
	}
	if avatarPath == "" {
		return models.User{}, errValidationf("avatar path is required")
	}

	user, err := e.store.UpdateUserProfile(userID, name, avatarPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, errNotFound("user")
		}
		return models.User{}, errStore("update profile", err)
	}
	return user, nil
}
