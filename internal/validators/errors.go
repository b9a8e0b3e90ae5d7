package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Client-facing validation messages.
const (
	MsgNameRequired        = "Please tell us your name!"
	MsgEmailInvalid        = "Please provide a valid email"
	MsgPasswordTooShort    = "A password must have more or equal than 8 characters"
	MsgPasswordTooLong     = "A password must have less or equal than 72 bytes"
	MsgPasswordsDiffer     = "Passwords are not the same!"
	MsgPasswordNotUpdated  = "This route is not for password updates. Please use /updateMyPassword."
	MsgPasswordUnchanged   = "New password must differ from the current one"
	MsgCredentialsRequired = "Please provide email and password!"
	MsgRoleInvalid         = "Role is either: user, guide, lead-guide, admin"

	MsgTourNameRequired   = "A tour must have a name"
	MsgTourNameLength     = "A tour name must have between 10 and 40 characters"
	MsgDurationRequired   = "A tour must have a duration"
	MsgGroupSizeRequired  = "A tour must have a group size"
	MsgDifficultyInvalid  = "Difficulty is either: easy, medium, difficult"
	MsgPriceRequired      = "A tour must have a price"
	MsgDiscountTooHigh    = "Discount price should be below regular price"
	MsgSummaryRequired    = "A tour must have a summary"
	MsgImageCoverRequired = "A tour must have a cover image"
	MsgLocationInvalid    = "A location must be a point with [lng, lat] coordinates"

	MsgReviewRequired   = "Review can not be empty!"
	MsgRatingRange      = "Rating must be between 1 and 5"
	MsgReviewTourNeeded = "Review must belong to a tour."
	MsgReviewUserNeeded = "Review must belong to a user"

	MsgBookingTourNeeded = "Booking must belong to a Tour!"
	MsgBookingUserNeeded = "Booking must belong to a User!"
	MsgBookingPrice      = "Booking must have a price."
)
