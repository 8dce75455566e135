package entity

// Welcome is the greeting sent once to a newly registered user.
type Welcome struct {
	EventID   string
	UserID    string
	Kind      string
	Email     string
	FirstName string
	LastName  string
}

// DedupKey identifies the welcome across redeliveries of the same event.
// Events published without an id fall back to the user.
func (w Welcome) DedupKey() string {
	if w.EventID != "" {
		return "welcome:event:" + w.EventID
	}
	return "welcome:user:" + w.UserID
}

// IsAuthor reports whether the greeting is for a book author.
func (w Welcome) IsAuthor() bool {
	return w.Kind == "book_author"
}
