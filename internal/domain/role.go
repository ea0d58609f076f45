package domain

// Role is a board-scoped access level.
type Role string

// Role constants. RoleNone means no access at all.
const (
	RoleNone      Role = ""
	RoleOwner     Role = "owner"
	RoleEditor    Role = "editor"
	RoleCommenter Role = "commenter"
	RoleViewer    Role = "viewer"
)

// Valid reports whether r is one of the four grantable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleCommenter, RoleViewer:
		return true
	}
	return false
}

// ParseRole maps a stored role string to a Role, RoleNone when unknown.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleNone
	}
	return r
}
