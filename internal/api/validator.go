package api

import "github.com/go-playground/validator/v10"

// requestValidator adapts go-playground/validator to echo's Validator interface.
type requestValidator struct {
	validator *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validator.Struct(i)
}
