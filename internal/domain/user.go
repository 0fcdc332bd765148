package domain

import "errors"

// User is the authenticated customer. The password is never kept.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate rejects users the backend returned without an identity.
func (u *User) Validate() error {
	if u.ID <= 0 {
		return errors.New("user id missing")
	}
	return nil
}

// DisplayName is the name shown in the navigation bar.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
