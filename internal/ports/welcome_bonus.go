package ports

import "context"

// WelcomeBonusPort hands out the one-time signup bonus.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce credits the bonus at most once per user;
	// granted=false means an earlier grant already happened.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
