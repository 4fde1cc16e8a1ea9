package services

import (
	"strings"

	"ludo-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type JoinRequest struct {
	RoomID   string `validate:"required,numeric,len=3"`
	PlayerID string `validate:"required"`
	Name     string
	Color    string
}

type ConfirmColorRequest struct {
	RoomID   string `validate:"required,numeric,len=3"`
	PlayerID string `validate:"required"`
	Color    string `validate:"required"`
}

type AvailableColorsRequest struct {
	RoomID          string `validate:"required,numeric,len=3"`
	ExcludePlayerID string
}

type StartRequest struct {
	RoomID      string `validate:"required,numeric,len=3"`
	RequesterID string `validate:"required"`
}

type RollDieRequest struct {
	RoomID   string `validate:"required,numeric,len=3"`
	PlayerID string `validate:"required"`
	Forced   *int
	Operator bool
}

type MoveDiscRequest struct {
	RoomID    string `validate:"required,numeric,len=3"`
	PlayerID  string `validate:"required"`
	Color     string `validate:"required"`
	PawnIndex int
}

type SwitchTurnRequest struct {
	RoomID      string `validate:"required,numeric,len=3"`
	RequesterID string `validate:"required"`
	Force       bool
	Operator    bool
}

type PlayerWonRequest struct {
	RoomID string `validate:"required,numeric,len=3"`
	Color  string `validate:"required"`
}

type HistoryRequest struct {
	RoomID string `validate:"required,numeric,len=3"`
	Cursor *string
}

// check runs the struct tags and folds the failures into one InvalidRequest error.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fields []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			fields = append(fields, fe.Field()+" "+fe.Tag())
		}
	} else {
		fields = append(fields, err.Error())
	}
	return errors.Invalid(strings.Join(fields, ", "))
}
