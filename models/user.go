package models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated identity attached to a request by the
// identity service. The engine trusts it as-is and performs no
// credential checks. RestaurantID is set only for manager principals
// and scopes what they may see and transition.
type Principal struct {
	UserID       string
	Role         Role
	RestaurantID int64
}
