package domain

// ItemAvailability describes how many units of an item can serve a
// requested interval. Advisory only: the answer may be stale by the
// time a booking is attempted, the atomic reservation decides.
type ItemAvailability struct {
	Available  bool
	FreeUnits  int
	TotalUnits int
}
