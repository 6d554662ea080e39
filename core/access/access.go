// Package access decides what an authenticated role may see and do.
package access

import (
	"github.com/trezcool/amenagement/core"
)

// Roles
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var AllRoles = []Role{RoleAdmin, RoleUser}

type Role string

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrateur"
	case RoleUser:
		return "Utilisateur"
	}
	return string(r)
}

// Resources
const (
	Students     Resource = "students"
	Lots         Resource = "lots"
	Services     Resource = "services"
	Amenagements Resource = "amenagements"
	Analytics    Resource = "analytics"
	Profile      Resource = "profile"
)

type Resource string

// Capability is a set of operations on a Resource.
type Capability uint8

const (
	Read Capability = 1 << iota
	Create
	Update
	Delete

	None Capability = 0
	CRUD            = Read | Create | Update | Delete
)

func (c Capability) Has(o Capability) bool { return c&o == o }

// Policy maps each Resource to the Capability granted on it. Missing resources grant nothing.
type Policy map[Resource]Capability

// PolicyFor returns the role's capabilities. An unknown role gets an empty policy.
func PolicyFor(role Role) Policy {
	switch role {
	case RoleAdmin:
		return Policy{
			Students:     CRUD,
			Lots:         CRUD,
			Services:     CRUD,
			Amenagements: CRUD,
			Analytics:    Read,
		}
	case RoleUser:
		return Policy{
			Lots:         Read,
			Amenagements: Read,
			Profile:      Read,
		}
	}
	return Policy{}
}

func (p Policy) Can(res Resource, c Capability) bool {
	return c != None && p[res].Has(c)
}

// Principal is the authenticated party access is decided for.
type Principal interface {
	AccessRole() Role
}

// Authorize fails with core.ErrUnauthenticated for a nil principal
// and core.ErrForbidden when the role lacks the capability.
func Authorize(p Principal, res Resource, c Capability) error {
	if p == nil {
		return core.ErrUnauthenticated
	}
	if !PolicyFor(p.AccessRole()).Can(res, c) {
		return core.ErrForbidden
	}
	return nil
}
