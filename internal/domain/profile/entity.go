package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTechnical  Role = "technical"
	RoleProduct    Role = "product"
	RoleBusiness   Role = "business"
	RoleMarketing  Role = "marketing"
	RoleGeneralist Role = "generalist"
)

type Availability string

const (
	AvailabilityFullTime         Availability = "full-time"
	AvailabilityPartTime         Availability = "part-time"
	AvailabilityEveningsWeekends Availability = "evenings-weekends"
)

type Ambition string

const (
	AmbitionLifestyle Ambition = "lifestyle"
	AmbitionGrowth    Ambition = "growth"
	AmbitionUnicorn   Ambition = "unicorn"
)

// Profile is owned by the user and only read by the matching core.
type Profile struct {
	UserID       uuid.UUID
	Name         string
	Age          *int
	City         string
	School       string
	Bio          string
	AvatarURL    string
	Role         Role
	Availability Availability
	Ambition     Ambition
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Role) Valid() bool {
	switch r {
	case RoleTechnical, RoleProduct, RoleBusiness, RoleMarketing, RoleGeneralist:
		return true
	default:
		return false
	}
}
