package user

import "fmt"

// Principal is the authenticated identity attached to a request by the
// account service introspection.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

func (p Principal) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("principal user id is required")
	}

	return nil
}

// Profile is the public-facing slice of a user surfaced on leaderboards.
type Profile struct {
	ID          string
	Username    string
	DisplayName string
}

// Label returns the name to render for the user, falling back to the
// username when no display name is set.
func (p Profile) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
