package model

// User represents the account that owns events. Credentials live with the
// account service and are never loaded here.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Events   []string `json:"events"` // Owned event IDs, append-only
}

// Summary returns the projection embedded in event listings
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		Username: u.Username,
		Name:     u.Name,
	}
}
