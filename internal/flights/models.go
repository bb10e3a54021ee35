package flights

import "time"

// Defaults applied when a create omits the field or submits it blank.
const (
	DefaultGate   = "N/A"
	DefaultStatus = "On Time"
)

// Flight is one record in a user's private collection. The id is
// store-generated and immutable; user_id is a value reference with no
// enforced foreign key. JSON names match the documents the API has
// always served.
type Flight struct {
	ID               string    `gorm:"primaryKey" json:"_id"`
	UserID           string    `gorm:"index;not null" json:"userid"`
	FlightNumber     string    `json:"flightNumber"`
	Destination      string    `json:"destination"`
	Hours            string    `json:"hours"`
	Minutes          string    `json:"minutes"`
	Gate             string    `json:"gate"`
	Status           string    `json:"status"`
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport"`
	DepartureTime    string    `json:"departureTime"`
	CreatedAt        time.Time `json:"createdAt"`
	Photo            string    `gorm:"type:text" json:"photo,omitempty"`
}

func (Flight) TableName() string { return "flights" }
