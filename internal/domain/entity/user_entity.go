package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Role is the flat authorization role attached to a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// ParseRole maps a case-insensitive string onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// ParseStatus maps a case-insensitive string onto a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusActive:
		return StatusActive, true
	case StatusSuspended:
		return StatusSuspended, true
	}
	return "", false
}

// PasswordHasher is the one-way credential hashing capability. It is passed
// into entity methods explicitly so the entity stays crypto-agnostic.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// User is the aggregate root of the identity domain.
// PasswordHash only ever holds a bcrypt hash, never plaintext.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	DateOfBirth  *time.Time
	Role         Role
	Status       Status
	CreatedAt    time.Time
	LastLogin    *time.Time

	// Addresses is the owned collection; deleting the user deletes them.
	Addresses []Address
}

// PrepareForRegistration validates the fields registration depends on and
// stamps the initial lifecycle state. It does not hash the password; the
// caller must have set PasswordHash already.
func (u *User) PrepareForRegistration() bool {
	if strings.TrimSpace(u.Email) == "" || strings.TrimSpace(u.PasswordHash) == "" {
		return false
	}
	if !emailPattern.MatchString(u.Email) {
		return false
	}
	u.Status = StatusPending
	u.CreatedAt = time.Now()
	return true
}

// Authenticate verifies the raw password and records the login time on
// success. Nil or blank input reports false, never panics.
func (u *User) Authenticate(rawPassword string, hasher PasswordHasher) bool {
	if rawPassword == "" || hasher == nil {
		return false
	}
	if !u.VerifyPassword(rawPassword, hasher) {
		return false
	}
	now := time.Now()
	u.LastLogin = &now
	return true
}

// VerifyPassword reports whether rawPassword matches the stored hash.
func (u *User) VerifyPassword(rawPassword string, hasher PasswordHasher) bool {
	if rawPassword == "" || u.PasswordHash == "" || hasher == nil {
		return false
	}
	return hasher.Verify(u.PasswordHash, rawPassword)
}

// ChangePassword re-hashes the credential once the current password
// verifies and the new one meets the minimum length.
func (u *User) ChangePassword(currentRaw, newRaw string, hasher PasswordHasher) bool {
	if !u.VerifyPassword(currentRaw, hasher) {
		return false
	}
	if len(newRaw) < 6 {
		return false
	}
	hash, err := hasher.Hash(newRaw)
	if err != nil {
		return false
	}
	u.PasswordHash = hash
	return true
}

// SetPassword hashes and stores rawPassword unconditionally. Used by the
// registration path where there is no current password to verify.
func (u *User) SetPassword(rawPassword string, hasher PasswordHasher) error {
	hash, err := hasher.Hash(rawPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// UpdateProfile overwrites only the fields that are present.
func (u *User) UpdateProfile(firstName, lastName, phoneNumber *string, dateOfBirth *time.Time) {
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	if phoneNumber != nil {
		u.PhoneNumber = *phoneNumber
	}
	if dateOfBirth != nil {
		u.DateOfBirth = dateOfBirth
	}
}

// IsOfLegalAge reports whether the 18th birthday lies strictly in the past.
func (u *User) IsOfLegalAge() bool {
	if u.DateOfBirth == nil {
		return false
	}
	return u.DateOfBirth.AddDate(18, 0, 0).Before(time.Now())
}

// IsBirthday reports whether today matches the stored birth month and day.
func (u *User) IsBirthday() bool {
	if u.DateOfBirth == nil {
		return false
	}
	now := time.Now()
	return now.Month() == u.DateOfBirth.Month() && now.Day() == u.DateOfBirth.Day()
}

// Initials returns uppercase initials for avatars: first/last name letters,
// then the first letter of the email, then the literal "U".
func (u *User) Initials() string {
	var b strings.Builder
	if fn := strings.TrimSpace(u.FirstName); fn != "" {
		b.WriteRune(unicode.ToUpper([]rune(fn)[0]))
	}
	if ln := strings.TrimSpace(u.LastName); ln != "" {
		b.WriteRune(unicode.ToUpper([]rune(ln)[0]))
	}
	if b.Len() > 0 {
		return b.String()
	}
	if u.Email != "" {
		return string(unicode.ToUpper([]rune(u.Email)[0]))
	}
	return "U"
}

// HasRole is an equality check against the current role.
func (u *User) HasRole(required Role) bool {
	return u.Role == required
}

// AddAddress appends an owned address, stamping the back-reference.
func (u *User) AddAddress(a Address) {
	a.UserID = u.ID
	u.Addresses = append(u.Addresses, a)
}

// RemoveAddress detaches the address with the given id from the collection.
func (u *User) RemoveAddress(addressID string) {
	out := u.Addresses[:0]
	for _, a := range u.Addresses {
		if a.ID != addressID {
			out = append(out, a)
		}
	}
	u.Addresses = out
}

// FinalizeForCreate fills creation defaults for any field still unset.
// The store-write path invokes it exactly once, right before the insert.
func (u *User) FinalizeForCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.Status == "" {
		u.Status = StatusPending
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
}
