package handlers

import (
	"net/mail"
	"strings"

	"listd/internal/apperr"
)

const minPasswordLength = 8

// Request validation mirrors the error shape of the public contract: one
// {code, field, message} entry per violated constraint.

func requireField(fields []apperr.FieldError, field, value string) []apperr.FieldError {
	if strings.TrimSpace(value) == "" {
		fields = append(fields, apperr.FieldError{
			Code:    "required",
			Field:   field,
			Message: field + " is required",
		})
	}
	return fields
}

func requireEmail(fields []apperr.FieldError, field, value string) []apperr.FieldError {
	if _, err := mail.ParseAddress(value); err != nil {
		fields = append(fields, apperr.FieldError{
			Code:    "invalid_email",
			Field:   field,
			Message: "valid email required",
		})
	}
	return fields
}

func requirePassword(fields []apperr.FieldError, field, value string) []apperr.FieldError {
	if len(value) < minPasswordLength {
		fields = append(fields, apperr.FieldError{
			Code:    "too_short",
			Field:   field,
			Message: "password must be at least 8 characters",
		})
	}
	return fields
}
