package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Role      *Role     `json:"role,omitempty"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins name and surname for display.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // dot-separated capability token, e.g. service.filter.date
}

// PermissionNames flattens the nested permission list of a role.
func (u *User) PermissionNames() []string {
	if u == nil || u.Role == nil {
		return nil
	}
	names := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		names = append(names, p.Name)
	}
	return names
}
