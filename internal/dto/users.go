package dto

import (
	"time"

	"orchestra-platform/internal/models"
)

// User never carries the password hash.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    int       `json:"roleId"`
	Role      string    `json:"role"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateUser struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     int     `json:"role" binding:"required,role"`
	Image    *string `json:"image"`
}

// UpdateUser leaves the stored password untouched when Password is empty.
type UpdateUser struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     int    `json:"role" binding:"required,role"`
}

type UpdateImage struct {
	Image string `json:"image" binding:"required"`
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func ToUser(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		RoleID:    u.Role,
		Role:      RoleName(u.Role),
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

func ToUsers(in []models.User) []User {
	out := make([]User, 0, len(in))
	for i := range in {
		out = append(out, *ToUser(&in[i]))
	}
	return out
}

// Record builds the row for a signup; the caller replaces Password with its hash.
func (in CreateUser) Record() models.User {
	return models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Image:    in.Image,
	}
}

// Apply copies the editable fields onto an existing record. The password is left to the caller.
func (in UpdateUser) Apply(u *models.User) {
	u.Username = in.Username
	u.Email = in.Email
	u.Role = in.Role
}
