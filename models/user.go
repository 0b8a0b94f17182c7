// models/user.go
package models

import "time"

// User is a storefront account together with its profile.
type User struct {
	ID             string         `bson:"id" json:"id"`
	Email          string         `bson:"email" json:"email"`
	PasswordHash   string         `bson:"password_hash" json:"-"`
	FirstName      string         `bson:"first_name" json:"first_name"`
	LastName       string         `bson:"last_name" json:"last_name"`
	AvatarURL      string         `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	AvatarPublicID string         `bson:"avatar_public_id,omitempty" json:"-"`
	IsAdmin        bool           `bson:"is_admin" json:"is_admin"`
	Notifications  []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
