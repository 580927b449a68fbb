package user

import (
	"time"
)

// User represents a registered account.
// The password hash never leaves the process: it is excluded from JSON
// serialization so no module response can carry it by accident.
type User struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;type:text" json:"email"`
	PasswordHash string    `gorm:"not null;type:text" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the identity decoded from a verified bearer token.
// Beyond the signature check the values are untrusted input: no store
// lookup is performed, so a deleted user's token stays valid until expiry.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
