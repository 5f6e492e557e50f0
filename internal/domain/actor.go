package domain

// Actor is the caller identity resolved by the external identity provider
type Actor struct {
	Subject string
	IsStaff bool
}
