package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
)

// User is an account allowed to sign in to the dashboard.
type User struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      access.Role `json:"role"`
	Avatar    string      `json:"avatar,omitempty"`
	CreatedAt time.Time   `json:"createdAt"` // UTC
	UpdatedAt time.Time   `json:"updatedAt"` // UTC
	LastLogin time.Time   `json:"lastLogin"` // UTC
}

func (u User) AccessRole() access.Role { return u.Role }

func (u User) IsAdmin() bool {
	return u.Role == access.RoleAdmin
}

// account is the persisted form of a User.
type account struct {
	User         User   `json:"user"`
	PasswordHash []byte `json:"passwordHash"`
}

func (a *account) setPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *account) checkPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string      `json:"name" validate:"required"`
	Email           string      `json:"email" validate:"required,emailshape"`
	Role            access.Role `json:"role" validate:"enum"`
	Avatar          string      `json:"avatar"`
	Password        string      `json:"password" validate:"required"`
	PasswordConfirm string      `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Avatar = core.CleanString(nu.Avatar)
	if nu.Role == "" {
		nu.Role = access.RoleUser
	}
}

// UpdateUser defines what may be changed on an existing User. Blank fields keep their current value.
type UpdateUser struct {
	Name   string      `json:"name"`
	Role   access.Role `json:"role" validate:"omitempty,enum"`
	Avatar string      `json:"avatar"`
}

func (uu *UpdateUser) clean(orig User) {
	if uu.Name = core.CleanString(uu.Name); uu.Name == "" {
		uu.Name = orig.Name
	}
	if uu.Role == "" {
		uu.Role = orig.Role
	}
	if uu.Avatar = core.CleanString(uu.Avatar); uu.Avatar == "" {
		uu.Avatar = orig.Avatar
	}
}

// SetPassword replaces the password of an existing User.
type SetPassword struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`

	// attributes the password may not resemble
	name, email string
}

// Credentials are exchanged for a token.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
