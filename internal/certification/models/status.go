package models

// Status is the stored lifecycle state of a certification record. The
// passage of time never auto-transitions it; expiration against the current
// height is consulted only during verification.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusRevoked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
