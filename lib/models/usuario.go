package models

// Usuario represents a registered bot user and their assigned role.
// The ID is the Telegram user ID, which is also the primary key in the
// usuarios table.
type Usuario struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role"`
}
