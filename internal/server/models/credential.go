package models

// Credential is the stored secret material for one account. It is owned
// exclusively by its account and mutated only by password changes or hash
// upgrades. The OTAC secret is generated once at registration, is distinct
// from the password salt, and is never rotated by the login flow.
type Credential struct {
	AccountID      int64
	PasswordHash   []byte
	PasswordSalt   []byte
	HashIterations int
	OtacSecret     []byte
}
