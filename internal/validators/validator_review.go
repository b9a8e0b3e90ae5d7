package validators

import (
	"context"
	"strings"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/models"
)

const (
	FieldReview = "review"
	FieldRating = "rating"
	FieldTour   = "tour"
	FieldUser   = "user"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewValidator struct{}

func NewReviewValidator() Validator {
	return &ReviewValidator{}
}

// Validate checks a models.ReviewInput. Without fields every field is
// required, as on create; updates pass the fields they carry.
func (v *ReviewValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ReviewInput:
		return v.validateInput(value, fields...)
	case *models.ReviewInput:
		return v.validateInput(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ReviewValidator) validateInput(in models.ReviewInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReview, FieldRating, FieldTour, FieldUser}
	}

	for _, f := range fields {
		switch f {
		case FieldReview:
			if in.Review == nil || strings.TrimSpace(*in.Review) == "" {
				return apperr.Validation(FieldReview, MsgReviewRequired)
			}
		case FieldRating:
			if in.Rating == nil || *in.Rating < minRating || *in.Rating > maxRating {
				return apperr.Validation(FieldRating, MsgRatingRange)
			}
		case FieldTour:
			if in.TourID == nil || *in.TourID <= 0 {
				return apperr.Validation(FieldTour, MsgReviewTourNeeded)
			}
		case FieldUser:
			if in.UserID == nil || *in.UserID <= 0 {
				return apperr.Validation(FieldUser, MsgReviewUserNeeded)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ReviewUpdateFields returns the fields present in an update.
func ReviewUpdateFields(in models.ReviewInput) []string {
	var fields []string
	if in.Review != nil {
		fields = append(fields, FieldReview)
	}
	if in.Rating != nil {
		fields = append(fields, FieldRating)
	}
	if in.TourID != nil {
		fields = append(fields, FieldTour)
	}
	if in.UserID != nil {
		fields = append(fields, FieldUser)
	}
	return fields
}
