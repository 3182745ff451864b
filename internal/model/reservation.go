package model

// Reservation represents one persisted reservation request.
//
// The json tags double as the on-disk field names of the record files,
// so they must not be renamed.
type Reservation struct {
	ID        string `json:"id"`        // millisecond epoch string, assigned once at creation
	Name      string `json:"name"`      // guest name
	Phone     string `json:"phone"`     // guest phone number
	Email     string `json:"email"`     // guest email address
	Date      string `json:"date"`      // reservation date as submitted, YYYY-MM-DD
	Time      string `json:"time"`      // reservation time as submitted
	Guests    int    `json:"guests"`    // party size
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"` // submission timestamp, fixed-width ISO-8601 UTC
}
