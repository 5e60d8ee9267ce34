package models

// UserRole - роль, записываемая в JWT.
type UserRole string

const RoleAdmin UserRole = "admin"

// User - администратор площадки. Учётная запись одна и задаётся конфигурацией,
// поэтому в базе не хранится.
type User struct {
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
