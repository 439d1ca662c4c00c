package domain

// Hall is a physical room of a studio branch. Reservations never exceed its capacity.
type Hall struct {
	ID       int64
	BranchID int64
	Name     string
	Capacity int
}
