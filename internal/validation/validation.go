package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/cotask/internal/constants"
	"github.com/julianstephens/cotask/internal/models"
)

// TrimmedNonEmpty trims the input and returns it, or an error naming the
// field when nothing remains.
func TrimmedNonEmpty(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return trimmed, nil
}

// Role validates a workspace role string, defaulting to member when empty.
func Role(value string) (models.Role, error) {
	if value == "" {
		return models.RoleMember, nil
	}
	role := models.Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return role, nil
}

// ToggleAction validates a habit toggle action.
func ToggleAction(value string) (string, error) {
	if value != constants.ActionComplete && value != constants.ActionUncomplete {
		return "", fmt.Errorf("action must be either %q or %q", constants.ActionComplete, constants.ActionUncomplete)
	}
	return value, nil
}
