package domain

// Principal is the authenticated requester of a call.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the principal holds the administrative role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
