package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateProfile applies username/displayName to the given user's account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
