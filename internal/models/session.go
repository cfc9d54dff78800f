package models

// Session is the single persisted login record. The token is an opaque
// derived string, not a credential the store verifies.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
