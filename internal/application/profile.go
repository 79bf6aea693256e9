package application

import (
	"time"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
)

// Profile is the externally visible shape of a user record. It is what
// handlers serialize and what the redis cache stores; the password hash
// never leaves the application layer.
type Profile struct {
	ID          string     `json:"userid"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth *string    `json:"dateOfBirth"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin"`
}

func profileOf(u *entity.User) Profile {
	p := Profile{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		p.DateOfBirth = &dob
	}
	return p
}
