package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/event"
	"room-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode unmarshals and validates an inbound payload.
func decode(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}

// reply turns a coordinator error into an error event for the caller.
// Errors without a client code stay server-side.
func reply(log *slog.Logger, broadcaster contract.Broadcaster, connID domain.ConnectionID, name string, err error) {
	if err == nil {
		return
	}
	if code, ok := errors.Code(err); ok {
		log.Debug("Rejected client event", "conn", connID, "event", name, "code", code)
		broadcaster.EmitToClient(connID, event.NewError(code, err.Error()))
		return
	}
	log.Debug("Dropped client event", "conn", connID, "event", name, "err", err)
}
