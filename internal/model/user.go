package model

// User represents a directory entry scoped to a single tenant
type User struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Age      *int    `json:"age"`
	TenantID string  `json:"tenant_id"`
}

// Clone returns a copy of the user so callers never hold references
// into the store's backing slice
func (u *User) Clone() *User {
	c := *u
	if u.Email != nil {
		email := *u.Email
		c.Email = &email
	}
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	return &c
}

// CreateUser is the payload for user creation
type CreateUser struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}

// UserPatch is the payload for partial updates. Each field tracks whether
// it appeared in the request body: absent fields leave the stored value
// untouched, present fields overwrite it, including an explicit null.
type UserPatch struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Age   Optional[int]    `json:"age"`
}

// IsZero reports whether the patch carries no fields at all
func (p UserPatch) IsZero() bool {
	return !p.Name.Set && !p.Email.Set && !p.Age.Set
}
