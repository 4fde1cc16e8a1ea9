package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ClaimsRequest struct {
	PlayerID string   `validate:"required,uuid"`
	Roles    []string `validate:"required,min=1,dive,oneof=player operator"`
}

func ValidateClaims(req ClaimsRequest) error {
	return validate.Struct(req)
}
