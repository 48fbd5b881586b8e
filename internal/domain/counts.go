package domain

// TicketCounts is the derived aggregate published next to the collection.
// It is always recomputed from the full collection, never patched.
type TicketCounts struct {
	Pending       int `json:"pending"`
	Open          int `json:"open"`
	Resolved      int `json:"resolved"`
	Closed        int `json:"closed"`
	OnHold        int `json:"onHold"`
	ResolutionDue int `json:"resolutionDue"`
	ResponseDue   int `json:"responseDue"`
	Created       int `json:"created"`
	Requested     int `json:"requested"`
	Total         int `json:"total"`
}
