package flights

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrUploadRead marks a failed read of the uploaded photo.
var ErrUploadRead = errors.New("flights: failed to read upload")

// formFields are the submittable flight fields, keyed by form name.
var formFields = map[string]string{
	"flightNumber":     "flight_number",
	"destination":      "destination",
	"hours":            "hours",
	"minutes":          "minutes",
	"gate":             "gate",
	"status":           "status",
	"airline":          "airline",
	"departureAirport": "departure_airport",
	"arrivalAirport":   "arrival_airport",
	"departureTime":    "departure_time",
}

// Input is the parsed form of a create or update request. Fields holds
// only what the client actually submitted, so updates merge rather than
// overwrite; Photo is empty unless a new nonzero upload came in.
type Input struct {
	Fields map[string]string
	Photo  string
}

// ParseInput reads the flight fields and optional photo upload out of a
// form or multipart request.
func ParseInput(r *http.Request) (Input, error) {
	// PostFormValue would parse lazily, but parse up front so field
	// presence can be checked against r.PostForm.
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			_ = r.ParseForm()
		}
	}

	in := Input{Fields: make(map[string]string)}
	for name := range formFields {
		if values, ok := r.PostForm[name]; ok && len(values) > 0 {
			in.Fields[name] = values[0]
		}
	}

	file, header, err := r.FormFile("filetoupload")
	if err == nil {
		defer file.Close()
		if header.Size > 0 {
			data, err := io.ReadAll(file)
			if err != nil {
				return in, ErrUploadRead
			}
			in.Photo = base64.StdEncoding.EncodeToString(data)
		}
	}

	return in, nil
}

func (in Input) field(name, fallback string) string {
	if v := in.Fields[name]; v != "" {
		return v
	}
	return fallback
}

// NewFlight builds a record for the owner, applying the documented
// defaults and stamping the creation time.
func (in Input) NewFlight(ownerID string) Flight {
	return Flight{
		ID:               uuid.NewString(),
		UserID:           ownerID,
		FlightNumber:     in.Fields["flightNumber"],
		Destination:      in.Fields["destination"],
		Hours:            in.Fields["hours"],
		Minutes:          in.Fields["minutes"],
		Gate:             in.field("gate", DefaultGate),
		Status:           in.field("status", DefaultStatus),
		Airline:          in.Fields["airline"],
		DepartureAirport: in.Fields["departureAirport"],
		ArrivalAirport:   in.Fields["arrivalAirport"],
		DepartureTime:    in.Fields["departureTime"],
		CreatedAt:        time.Now(),
		Photo:            in.Photo,
	}
}

// Updates maps the submitted fields to their columns for a partial
// merge. The photo column appears only when a new upload was supplied;
// created_at is never touched.
func (in Input) Updates() map[string]any {
	updates := make(map[string]any, len(in.Fields)+1)
	for name, value := range in.Fields {
		updates[formFields[name]] = value
	}
	if in.Photo != "" {
		updates["photo"] = in.Photo
	}
	return updates
}
