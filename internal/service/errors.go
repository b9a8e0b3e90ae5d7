package service

import (
	"errors"
	"net/http"

	"github.com/nitesh01487/natours/internal/apperr"
)

var (
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrHashingPassword     = errors.New("error hashing password")
	ErrInvalidDistanceUnit = apperr.Validation("unit", "Unit is either: mi, km")
	ErrInvalidCoordinates  = apperr.Validation("latlng", "Please provide latitude and longitude in the format lat,lng.")
	ErrInvalidYear         = apperr.Validation("year", "Please provide a valid year")
	ErrUnknownGuide        = apperr.Validation("guides", "Every guide must be an active user")

	ErrTokenExpired  = &apperr.AuthError{Reason: apperr.InvalidOrExpiredToken, Message: "Your token has expired! Please log in again."}
	ErrTokenInvalid  = &apperr.AuthError{Reason: apperr.InvalidOrExpiredToken, Message: "Invalid token. Please log in again!"}
	ErrWrongPassword = &apperr.AuthError{Reason: apperr.InvalidCredentials, Message: "Your current password is wrong."}
)

const (
	msgNoUserWithEmail = "There is no user with that email address."
	msgEmailNotSent    = "There was an error sending the email. Try again later!"
	msgAlreadyReviewed = "You have already reviewed this tour"
	msgPaymentsOff     = "Payments are not available right now"
	msgCheckoutFailed  = "Could not create a checkout session"
)

func errNoUserWithEmail(err error) error {
	return apperr.Operational(http.StatusNotFound, msgNoUserWithEmail, err)
}

func errEmailNotSent(err error) error {
	return apperr.Operational(http.StatusInternalServerError, msgEmailNotSent, err)
}
