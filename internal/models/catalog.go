package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// StringArray handles TEXT[] columns in PostgreSQL
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.Array(a).Value()
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	slice := (*[]string)(a)
	return pq.Array(slice).Scan(src)
}

// FlightDetails describes the flight bundled into a package
type FlightDetails struct {
	Airline   string `json:"airline"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
}

// Value implements the driver.Valuer interface
func (f FlightDetails) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements the sql.Scanner interface
func (f *FlightDetails) Scan(src interface{}) error {
	if src == nil {
		*f = FlightDetails{}
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		return errors.New("flight_details column is not a byte slice")
	}
	return json.Unmarshal(bytes, f)
}

// HotelDetails describes the hotel bundled into a package
type HotelDetails struct {
	Name      string   `json:"name"`
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
}

// Value implements the driver.Valuer interface
func (h HotelDetails) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implements the sql.Scanner interface
func (h *HotelDetails) Scan(src interface{}) error {
	if src == nil {
		*h = HotelDetails{}
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		return errors.New("hotel_details column is not a byte slice")
	}
	return json.Unmarshal(bytes, h)
}

// Destination is a read-only catalog entry
type Destination struct {
	ID              int         `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Country         string      `json:"country" db:"country"`
	Description     string      `json:"description" db:"description"`
	ImageURL        string      `json:"image_url" db:"image_url"`
	BestTimeToVisit string      `json:"best_time_to_visit" db:"best_time_to_visit"`
	Activities      StringArray `json:"activities" db:"activities"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// Package is a bookable travel bundle, loosely linked to a destination
// by identifier. No referential integrity is enforced on the link.
type Package struct {
	ID            int           `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Price         float64       `json:"price" db:"price"`
	Duration      string        `json:"duration" db:"duration"`
	ImageURL      string        `json:"image" db:"image_url"`
	Includes      StringArray   `json:"includes" db:"includes"`
	FlightDetails FlightDetails `json:"flight_details" db:"flight_details"`
	HotelDetails  HotelDetails  `json:"hotel_details" db:"hotel_details"`
	Dates         StringArray   `json:"dates" db:"dates"`
	DestinationID int           `json:"destination_id" db:"destination_id"`
}
