package domain

import "time"

// AuthorRole indicates which side of the conversation authored a message.
type AuthorRole string

const (
	AuthorRoleAgent    AuthorRole = "agent"
	AuthorRoleCustomer AuthorRole = "customer"
)

// MessageAuthor identifies who wrote a ticket message.
type MessageAuthor struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Initials string     `json:"initials" yaml:"initials"`
	Role     AuthorRole `json:"type" yaml:"type"`
}

// TicketMessage captures communications in a ticket thread. Messages are
// immutable once appended.
type TicketMessage struct {
	ID         string        `json:"id" yaml:"id"`
	TicketID   string        `json:"ticketId" yaml:"ticketId"`
	Author     MessageAuthor `json:"author" yaml:"author"`
	Content    string        `json:"content" yaml:"content"`
	CreatedAt  time.Time     `json:"createdAt" yaml:"createdAt"`
	IsInternal bool          `json:"isInternal" yaml:"isInternal"`
}
