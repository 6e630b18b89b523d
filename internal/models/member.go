package models

// Member represents a participant identity within a group.
//
// Members are not user accounts: they are display identities the group
// owner manages, referenced by expenses and settlements through their ID.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// GroupID is the group this member belongs to.
	GroupID string

	// Name is the display name of the member.
	Name string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
