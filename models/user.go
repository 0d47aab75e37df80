package models

// UserRole defines the two roles in the system
type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleChef  UserRole = "chef"
)

// User is looked up by nickname on login; uniqueness of nicknames is
// assumed, not enforced.
type User struct {
	ID         int      `json:"id"`
	Nickname   string   `json:"nickname"`
	Avatar     string   `json:"avatar"`
	Role       UserRole `json:"role"`
	Points     int      `json:"points"`
	TotalSpend float64  `json:"totalSpend"`
	OrderCount int      `json:"orderCount"`
}
