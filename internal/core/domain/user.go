package domain

import "time"

// Role determines which row of the permission matrix applies to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleChef     Role = "chef"
	RoleCustomer Role = "customer"
)

// Usernames of the fixture accounts created by the seeder. These are the only
// accounts whose login is checked against the shared seed password.
const (
	SeedAdminUsername    = "admin"
	SeedChefUsername     = "chef"
	SeedCustomerUsername = "newuser"
)

// GuestUserID is recorded on orders placed without a signed-in user.
const GuestUserID = "guest"

// User models an identity known to the restaurant. Users are immutable once created.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsSeedAccount reports whether username belongs to one of the fixture accounts.
func IsSeedAccount(username string) bool {
	switch username {
	case SeedAdminUsername, SeedChefUsername, SeedCustomerUsername:
		return true
	}
	return false
}
