package core

// User is a room member. ID is allocated once at join time; ConnID is the
// opaque handle to the transport session carrying this member.
type User struct {
	ID      string
	Name    string
	ConnID  string
	Visible bool
}

// NewUser constructs a member that starts out visible.
func NewUser(id, name, connID string) *User {
	return &User{
		ID:      id,
		Name:    name,
		ConnID:  connID,
		Visible: true,
	}
}
