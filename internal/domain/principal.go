package domain

// Principal is the authenticated user a data operation runs on behalf of.
// The zero value is the anonymous principal.
type Principal struct {
	UserID string
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}
