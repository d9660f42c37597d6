package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso. Executivos e contadores enxergam todas as lojas;
// gerentes ficam restritos ao conjunto de lojas atribuídas.
const (
	RoleExecutive  = 1
	RoleBookkeeper = 2
	RoleManager    = 3
)

type User struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Lastname       string     `json:"lastname"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"password"`
	Active         bool       `json:"active"`
	RoleID         int        `json:"role_id"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at"`
	AssignedStores []string   `json:"assigned_stores"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id"`
	Deleted  *bool   `json:"deleted"`
}

// Claims é o principal autenticado transportado no token JWT. UserStores
// carrega as lojas atribuídas no momento do login.
type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserEmail    string
	UserActive   bool
	UserRoleID   int
	UserStores   []string
	jwt.RegisteredClaims
}

// IsManager indica se o principal está sujeito ao escopo de lojas atribuídas.
func (c *Claims) IsManager() bool {
	return c.UserRoleID == RoleManager
}
