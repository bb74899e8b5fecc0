package matching

import (
	"cofounder-match/internal/domain/profile"

	"github.com/google/uuid"
)

// ComplementaryRoles returns the roles a user is preferentially shown. A nil
// result means any role.
func ComplementaryRoles(role profile.Role) []profile.Role {
	switch role {
	case profile.RoleTechnical:
		return []profile.Role{profile.RoleBusiness, profile.RoleProduct}
	case profile.RoleBusiness:
		return []profile.Role{profile.RoleTechnical, profile.RoleProduct}
	case profile.RoleProduct:
		return []profile.Role{profile.RoleTechnical, profile.RoleBusiness}
	default:
		return nil
	}
}

type FilterInput struct {
	ActingUserID uuid.UUID
	Liked        map[uuid.UUID]struct{}
	Roles        []profile.Role
}

// FilterCandidates keeps active profiles that are neither the acting user nor
// already liked, restricted to Roles when it is non-empty. Input order is kept.
func FilterCandidates(in FilterInput, profiles []profile.Profile) []profile.Profile {
	var allowed map[profile.Role]struct{}
	if len(in.Roles) > 0 {
		allowed = make(map[profile.Role]struct{}, len(in.Roles))
		for _, r := range in.Roles {
			allowed[r] = struct{}{}
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(profiles))
	out := make([]profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.UserID == uuid.Nil || p.UserID == in.ActingUserID || !p.IsActive {
			continue
		}
		if _, ok := in.Liked[p.UserID]; ok {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[p.Role]; !ok {
				continue
			}
		}
		if _, dup := seen[p.UserID]; dup {
			continue
		}
		seen[p.UserID] = struct{}{}
		out = append(out, p)
	}
	return out
}
