package models

// Group represents a set of people who share expenses.
// Groups own expenses and settlements, enabling per-group history.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the list of participant identities in this group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member returns the member with the given ID, or nil if absent.
func (g *Group) Member(id string) *Member {
	for i := range g.Members {
		if g.Members[i].ID == id {
			return &g.Members[i]
		}
	}
	return nil
}

// HasMember reports whether a member with the given ID is in the group.
func (g *Group) HasMember(id string) bool {
	return g.Member(id) != nil
}
