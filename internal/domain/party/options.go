package party

// ListOptions scopes a party listing. A nil EventID lists guild-wide
// parties; otherwise parties bound to the event.
type ListOptions struct {
	EventID *string
}
