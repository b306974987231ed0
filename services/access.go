package services

import (
	"fmt"

	"portfolio/models"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// authorize reports whether principal may perform action on resource.
// Only the owner holds any right over a resource.
func authorize(principal string, action Action, resource models.Owned) error {
	if principal == "" {
		return fmt.Errorf("%w: no authenticated principal", models.ErrAuthentication)
	}
	if resource.OwnerUsername() != principal {
		return fmt.Errorf("%w: %s may not %s a resource owned by another user", models.ErrAuthorization, principal, action)
	}
	return nil
}
