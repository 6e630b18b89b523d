package models

// Expense represents a shared cost fronted by one member.
// The amount is split evenly among the participant set; the payer is
// usually also a participant, in which case they owe their own share
// like everyone else.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Groceries").
	Description string

	// Amount is the full cost of the expense. Never negative.
	Amount float64

	// PayerID is the member who paid the full amount up front.
	PayerID string

	// ParticipantIDs is the non-empty set of members splitting the cost.
	ParticipantIDs []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
