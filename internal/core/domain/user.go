package domain

import "time"

// PlatformUser is a synthetic account that ingested posts, seeded likes
// and generated comments are attributed to.
type PlatformUser struct {
	// ID is the unique identifier for the user.
	ID string

	// Username is the account handle.
	Username string

	// DisplayName is the name shown on posts and comments.
	DisplayName string

	// AvatarURL is the profile image URL, if any.
	AvatarURL string

	// IsPlatformUser distinguishes synthetic accounts from real ones.
	// Only synthetic accounts are eligible content owners.
	IsPlatformUser bool

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}
