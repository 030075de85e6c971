// Package models holds the persistent entities of the authentication engine.
package models

// Account is the identity being authenticated. The numeric ID is assigned by
// the database at registration and immutable thereafter.
type Account struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Address1    string
	Address2    string
	Postcode    string
	County      string
}
