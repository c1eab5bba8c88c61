package users

// Credential is one row of the static credential table.
type Credential struct {
	UserName     string
	PasswordHash string
}
