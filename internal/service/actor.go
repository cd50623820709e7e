package service

import "fmt"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Admin  bool
}

// System is the actor for scheduled jobs.
var System = Actor{UserID: "system", Admin: true}

// authorize allows admins and any caller listed in userIDs.
func (a Actor) authorize(action string, userIDs ...string) error {
	if a.Admin {
		return nil
	}
	for _, id := range userIDs {
		if id != "" && id == a.UserID {
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed to %s", ErrUnauthorized, action)
}
