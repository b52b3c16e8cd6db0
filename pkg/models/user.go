package models

type UserRole string

const (
	RoleHR       UserRole = "hr"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is an account that can log in. PasswordHash never leaves the process:
// it is excluded from JSON and responses use Public.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	Avatar       string   `json:"avatar,omitempty"`
	Department   string   `json:"department,omitempty"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// PublicUser is the response shape of a user.
type PublicUser struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Role       UserRole `json:"role"`
	Avatar     string   `json:"avatar,omitempty"`
	Department string   `json:"department,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Avatar:     u.Avatar,
		Department: u.Department,
	}
}

// Identity is the caller resolved from a bearer token.
type Identity struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email      string   `json:"email" validate:"required,contains=@" msg:"Valid email is required"`
	Password   string   `json:"password" validate:"min=6" msg:"Password must be at least 6 characters"`
	Name       string   `json:"name" validate:"notblank" msg:"Name is required"`
	Role       UserRole `json:"role" validate:"enum" msg:"Valid role is required"`
	Avatar     string   `json:"avatar"`
	Department string   `json:"department"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
