package model

// Notification is a user-visible system notification.
type Notification struct {
	ID      string `json:"id"`
	IconURL string `json:"iconUrl"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
