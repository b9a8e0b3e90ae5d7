package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/models"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldPasswordCurrent = "passwordCurrent"
	FieldRole            = "role"
)

type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)

	case models.ResetPasswordRequest:
		return validateNewPassword(value.Password, value.PasswordConfirm)
	case *models.ResetPasswordRequest:
		return validateNewPassword(value.Password, value.PasswordConfirm)

	case models.UpdatePasswordRequest:
		return v.validateUpdatePassword(value)
	case *models.UpdatePasswordRequest:
		return v.validateUpdatePassword(*value)

	case models.UpdateMeRequest:
		return v.validateUpdateMe(value)
	case *models.UpdateMeRequest:
		return v.validateUpdateMe(*value)

	case models.UserUpdate:
		return v.validateUserUpdate(value)
	case *models.UserUpdate:
		return v.validateUserUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirm}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return apperr.Validation(FieldName, MsgNameRequired)
			}
		case FieldEmail:
			if !IsEmail(req.Email) {
				return apperr.Validation(FieldEmail, MsgEmailInvalid)
			}
		case FieldPassword:
			if err := validatePasswordLength(req.Password); err != nil {
				return err
			}
		case FieldPasswordConfirm:
			if req.Password != req.PasswordConfirm {
				return apperr.Validation(FieldPasswordConfirm, MsgPasswordsDiffer)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLogin(req models.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperr.Validation("", MsgCredentialsRequired)
	}
	return nil
}

func (v *UserValidator) validateUpdatePassword(req models.UpdatePasswordRequest) error {
	if req.PasswordCurrent == "" {
		return apperr.Validation(FieldPasswordCurrent, "Please provide your current password")
	}
	if err := validateNewPassword(req.Password, req.PasswordConfirm); err != nil {
		return err
	}
	if req.Password == req.PasswordCurrent {
		return apperr.Validation(FieldPassword, MsgPasswordUnchanged)
	}
	return nil
}

func (v *UserValidator) validateUpdateMe(req models.UpdateMeRequest) error {
	if req.Password != nil || req.PasswordConfirm != nil {
		return apperr.Validation("", MsgPasswordNotUpdated)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apperr.Validation(FieldName, MsgNameRequired)
	}
	if req.Email != nil && !IsEmail(*req.Email) {
		return apperr.Validation(FieldEmail, MsgEmailInvalid)
	}
	return nil
}

func (v *UserValidator) validateUserUpdate(u models.UserUpdate) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.Validation(FieldName, MsgNameRequired)
	}
	if u.Email != nil && !IsEmail(*u.Email) {
		return apperr.Validation(FieldEmail, MsgEmailInvalid)
	}
	if u.Role != nil && !u.Role.Valid() {
		return apperr.Validation(FieldRole, MsgRoleInvalid)
	}
	return nil
}

func validatePasswordLength(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return apperr.Validation(FieldPassword, MsgPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return apperr.Validation(FieldPassword, MsgPasswordTooLong)
	}
	return nil
}

func validateNewPassword(password, confirm string) error {
	if err := validatePasswordLength(password); err != nil {
		return err
	}
	if password != confirm {
		return apperr.Validation(FieldPasswordConfirm, MsgPasswordsDiffer)
	}
	return nil
}

// IsEmail reports whether s is a bare address such as "jonas@example.io".
// Display names ("Jonas <jonas@example.io>") are rejected.
func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}
