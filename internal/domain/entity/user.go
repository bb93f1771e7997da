package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash and never leave the
// repository layer in any other form.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	FavoriteTeams   []int64
	FavoritePlayers []int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName is what token claims and the digest show for the user.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
