package domain

import (
	"fmt"
	"strings"
)

type FareClass string

const (
	FareClassInfant FareClass = "infant"
	FareClassChild  FareClass = "child"
	FareClassAdult  FareClass = "adult"
)

const (
	MinPassengerAge = 0
	MaxPassengerAge = 120

	minPassengerName     = 3
	minPassengerDocument = 5
)

type Passenger struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	Name          string    `json:"name"`
	DocumentID    string    `json:"document_id"`
	Age           int       `json:"age"`
	FareClass     FareClass `json:"fare_class"`
}

// DeriveFareClass maps an age to its fare class.
func DeriveFareClass(age int) (FareClass, error) {
	switch {
	case age < MinPassengerAge || age > MaxPassengerAge:
		return "", ErrInvalidAge
	case age <= 1:
		return FareClassInfant, nil
	case age <= 11:
		return FareClassChild, nil
	default:
		return FareClassAdult, nil
	}
}

// ResolveFareClass derives the class from age and rejects a requested class that disagrees.
func ResolveFareClass(age int, requested FareClass) (FareClass, error) {
	derived, err := DeriveFareClass(age)
	if err != nil {
		return "", err
	}
	if requested != "" && requested != derived {
		return "", &FareClassMismatchError{Requested: requested, Expected: derived, Age: age}
	}
	return derived, nil
}

// NewPassenger validates and normalizes passenger data.
func NewPassenger(reservationID int64, name, documentID string, age int, requested FareClass) (Passenger, error) {
	name = strings.TrimSpace(name)
	documentID = strings.TrimSpace(documentID)
	if len(name) < minPassengerName {
		return Passenger{}, fmt.Errorf("%w: name must have at least %d characters", ErrInvalidPassenger, minPassengerName)
	}
	if len(documentID) < minPassengerDocument {
		return Passenger{}, fmt.Errorf("%w: document must have at least %d characters", ErrInvalidPassenger, minPassengerDocument)
	}
	class, err := ResolveFareClass(age, requested)
	if err != nil {
		return Passenger{}, err
	}
	return Passenger{
		ReservationID: reservationID,
		Name:          name,
		DocumentID:    documentID,
		Age:           age,
		FareClass:     class,
	}, nil
}
