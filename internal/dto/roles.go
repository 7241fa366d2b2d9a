package dto

import "orchestra-platform/internal/models"

var roleNames = map[int]string{
	models.RolePlayer:    "Player",
	models.RoleConductor: "Conductor",
}

// RoleName maps a stored role code to its display name. Unknown codes map to "Unknown".
func RoleName(code int) string {
	if name, ok := roleNames[code]; ok {
		return name
	}
	return "Unknown"
}

func ValidRole(code int) bool {
	_, ok := roleNames[code]
	return ok
}
