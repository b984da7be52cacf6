package domain

// Principal is the resolved identity for one authenticated request. It is
// derived from a validated token plus a fresh role lookup and exists only for
// the duration of the request's authorization check. It is passed explicitly,
// never stored in ambient state.
type Principal struct {
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

// HasAnyRole reports whether the principal holds at least one of the given roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
