package repository

// Storage keys of the persisted layout. Tickets and the session never share a key.
const (
	UsersKey   = "users"
	SessionKey = "ticketapp_session"
	TicketsKey = "ticketapp_tickets"
)
