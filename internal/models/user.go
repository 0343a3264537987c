package models

// Role is the authorization level attached to a user record.
type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
)

// UserRecord is a single entry in the credential store. The JSON field names
// match the persisted authentication document, so the password hash is
// serialized here; it must never appear in an HTTP response (use UserInfo).
type UserRecord struct {
	Role         Role   `json:"role"`
	PasswordHash string `json:"password"`
}

// UserInfo is the redacted view of a record returned by the user list.
type UserInfo struct {
	Role Role `json:"role"`
}
