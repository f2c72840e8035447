package models

// User is a login credential record. Users are created out of band with the
// useradmin tool; there is no registration endpoint.
type User struct {
	ID       string
	UserName string
	Password string
}
