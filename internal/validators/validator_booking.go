package validators

import (
	"context"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/models"
)

const FieldBookingPrice = "price"

type BookingValidator struct{}

func NewBookingValidator() Validator {
	return &BookingValidator{}
}

func (v *BookingValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BookingInput:
		return v.validateInput(value, fields...)
	case *models.BookingInput:
		return v.validateInput(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *BookingValidator) validateInput(in models.BookingInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTour, FieldUser, FieldBookingPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldTour:
			if in.TourID == nil || *in.TourID <= 0 {
				return apperr.Validation(FieldTour, MsgBookingTourNeeded)
			}
		case FieldUser:
			if in.UserID == nil || *in.UserID <= 0 {
				return apperr.Validation(FieldUser, MsgBookingUserNeeded)
			}
		case FieldBookingPrice:
			if in.Price == nil || *in.Price < 0 {
				return apperr.Validation(FieldBookingPrice, MsgBookingPrice)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// BookingUpdateFields returns the fields present in an update.
func BookingUpdateFields(in models.BookingInput) []string {
	var fields []string
	if in.TourID != nil {
		fields = append(fields, FieldTour)
	}
	if in.UserID != nil {
		fields = append(fields, FieldUser)
	}
	if in.Price != nil {
		fields = append(fields, FieldBookingPrice)
	}
	return fields
}
