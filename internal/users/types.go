package users

import "strings"

// Address is a saved delivery address. At most one address per account is default.
type Address struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	IsDefault bool   `json:"is_default"`
}

// User is the session-visible account. It never carries the credential.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses"`
}

// Clone returns a copy that shares no address storage with u.
func (u User) Clone() User {
	out := u
	out.Addresses = append(make([]Address, 0, len(u.Addresses)), u.Addresses...)
	return out
}

// DefaultAddress returns the address flagged as default.
func (u User) DefaultAddress() (Address, bool) {
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

func (u User) FindAddress(id string) (Address, bool) {
	for _, a := range u.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// Account is the persisted record: the user plus its password hash.
type Account struct {
	User
	PasswordHash string `json:"password_hash"`
}

// NormalizeEmail trims and lower-cases an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
