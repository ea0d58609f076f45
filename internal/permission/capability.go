package permission

import "github.com/Rrens/boardsync/internal/domain"

// CanView is true for any granted role.
func CanView(role domain.Role) bool {
	return role.Valid()
}

// CanManageBoard is true only for owners.
func CanManageBoard(role domain.Role) bool {
	return role == domain.RoleOwner
}

// CanManageLists is true for owners and editors.
func CanManageLists(role domain.Role) bool {
	return role == domain.RoleOwner || role == domain.RoleEditor
}

// CanEditCards is true for owners and editors.
func CanEditCards(role domain.Role) bool {
	return role == domain.RoleOwner || role == domain.RoleEditor
}

// CanComment is true for every granted role except viewer.
func CanComment(role domain.Role) bool {
	return role.Valid() && role != domain.RoleViewer
}
