package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/models"
)

const (
	minTourName = 10
	maxTourName = 40
)

const (
	FieldTourName      = "name"
	FieldDuration      = "duration"
	FieldMaxGroupSize  = "maxGroupSize"
	FieldDifficulty    = "difficulty"
	FieldPrice         = "price"
	FieldPriceDiscount = "priceDiscount"
	FieldSummary       = "summary"
	FieldImageCover    = "imageCover"
	FieldStartLocation = "startLocation"
	FieldLocations     = "locations"
)

var allTourFields = []string{
	FieldTourName, FieldDuration, FieldMaxGroupSize, FieldDifficulty, FieldPrice,
	FieldPriceDiscount, FieldSummary, FieldImageCover, FieldStartLocation, FieldLocations,
}

// TourValidator checks a complete tour, either freshly built from input or an
// existing tour with an update applied.
type TourValidator struct{}

func NewTourValidator() Validator {
	return &TourValidator{}
}

func (v *TourValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Tour:
		return v.validateTour(value, fields...)
	case *models.Tour:
		return v.validateTour(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *TourValidator) validateTour(t models.Tour, fields ...string) error {
	if len(fields) == 0 {
		fields = allTourFields
	}

	for _, f := range fields {
		switch f {
		case FieldTourName:
			name := strings.TrimSpace(t.Name)
			if name == "" {
				return apperr.Validation(FieldTourName, MsgTourNameRequired)
			}
			if n := utf8.RuneCountInString(name); n < minTourName || n > maxTourName {
				return apperr.Validation(FieldTourName, MsgTourNameLength)
			}
		case FieldDuration:
			if t.Duration <= 0 {
				return apperr.Validation(FieldDuration, MsgDurationRequired)
			}
		case FieldMaxGroupSize:
			if t.MaxGroupSize <= 0 {
				return apperr.Validation(FieldMaxGroupSize, MsgGroupSizeRequired)
			}
		case FieldDifficulty:
			if !t.Difficulty.Valid() {
				return apperr.Validation(FieldDifficulty, MsgDifficultyInvalid)
			}
		case FieldPrice:
			if t.Price <= 0 {
				return apperr.Validation(FieldPrice, MsgPriceRequired)
			}
		case FieldPriceDiscount:
			if t.PriceDiscount != nil && (*t.PriceDiscount < 0 || *t.PriceDiscount >= t.Price) {
				return apperr.Validation(FieldPriceDiscount, MsgDiscountTooHigh)
			}
		case FieldSummary:
			if strings.TrimSpace(t.Summary) == "" {
				return apperr.Validation(FieldSummary, MsgSummaryRequired)
			}
		case FieldImageCover:
			if strings.TrimSpace(t.ImageCover) == "" {
				return apperr.Validation(FieldImageCover, MsgImageCoverRequired)
			}
		case FieldStartLocation:
			if t.StartLocation != nil && !validPoint(*t.StartLocation) {
				return apperr.Validation(FieldStartLocation, MsgLocationInvalid)
			}
		case FieldLocations:
			for _, loc := range t.Locations {
				if !validPoint(loc) {
					return apperr.Validation(FieldLocations, MsgLocationInvalid)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validPoint(l models.Location) bool {
	if l.Type != "" && l.Type != "Point" {
		return false
	}
	if len(l.Coordinates) != 2 {
		return false
	}
	return l.Lng() >= -180 && l.Lng() <= 180 && l.Lat() >= -90 && l.Lat() <= 90
}
