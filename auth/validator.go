package auth

import (
	"fmt"
	"room-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RoomPasswordRequest carries an optional room password. Any non-empty
// value is accepted, argon2 input is only capped so a client cannot make
// hashing arbitrarily expensive.
type RoomPasswordRequest struct {
	Password string `validate:"omitempty,max=72"`
}

func ValidateRoomPassword(password string) error {
	if err := validate.Struct(RoomPasswordRequest{Password: password}); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrValidation, err)
	}
	return nil
}
