// Package netconfig defines lightweight types shared by every layer of the
// sync core. It must have zero dependencies so codecs, systems and tests can
// import it without pulling in the ECS.
package netconfig

import "fmt"

// Role identifies one of the two fixed session participants.
type Role string

const (
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// Roles lists both roles in a stable order.
var Roles = [2]Role{RoleHost, RolePlayer}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleHost || r == RolePlayer
}

// Other returns the opposite role.
func (r Role) Other() Role {
	if r == RoleHost {
		return RolePlayer
	}
	return RoleHost
}

// IsAuthority reports whether r originates full-state drift corrections.
func (r Role) IsAuthority() bool {
	return r == RoleHost
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts "host", "player" and the alias "peer".
func ParseRole(s string) (Role, error) {
	switch s {
	case "host":
		return RoleHost, nil
	case "player", "peer":
		return RolePlayer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
