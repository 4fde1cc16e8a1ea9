package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a failure so the transport can surface it consistently.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindInvalidArgument
	KindTerminalState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindTerminalState:
		return "terminal_state"
	default:
		return "internal"
	}
}

// Error is a recoverable, caller-facing failure. None of them are fatal to a room.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrSessionNotFound   = newError(KindNotFound, "SESSION_NOT_FOUND", "session not found")
	ErrPlayerNotFound    = newError(KindNotFound, "PLAYER_NOT_FOUND", "player not found")
	ErrSessionFull       = newError(KindConflict, "SESSION_FULL", "session is full")
	ErrAlreadyStarted    = newError(KindConflict, "ALREADY_STARTED", "game has already started")
	ErrSessionLocked     = newError(KindConflict, "SESSION_LOCKED", "session is locked, no new players can join")
	ErrColorTaken        = newError(KindConflict, "COLOR_TAKEN", "color is already taken")
	ErrNotEnoughPlayers  = newError(KindConflict, "NOT_ENOUGH_PLAYERS", "need at least 2 players to start the game")
	ErrColorsUnconfirmed = newError(KindConflict, "COLORS_NOT_CONFIRMED", "every player must confirm a color")
	ErrAlreadyRolled     = newError(KindConflict, "ALREADY_ROLLED", "die already rolled this turn")
	ErrNoRollPending     = newError(KindConflict, "NO_ROLL_PENDING", "roll the die before moving")
	ErrNotPlaying        = newError(KindConflict, "NOT_PLAYING", "game is not in playing phase")
	ErrPlayerJoined      = newError(KindConflict, "PLAYER_ALREADY_JOINED", "player already joined this session")
	ErrPlayerInRoom      = newError(KindConflict, "PLAYER_ALREADY_IN_ROOM", "player is already seated in another room")
	ErrWinNotReached     = newError(KindConflict, "WIN_NOT_REACHED", "color has not won this game")
	ErrNoRoomAvailable   = newError(KindConflict, "NO_ROOM_AVAILABLE", "every room id is in use")
	ErrNotYourTurn       = newError(KindForbidden, "NOT_YOUR_TURN", "not your turn")
	ErrOperatorOnly      = newError(KindForbidden, "OPERATOR_ONLY", "operation requires the operator role")
	ErrIllegalMove       = newError(KindInvalidArgument, "ILLEGAL_MOVE", "illegal move")
	ErrInvalidDieValue   = newError(KindInvalidArgument, "INVALID_DIE_VALUE", "forced die value must be between 1 and 6")
	ErrInvalidColor      = newError(KindInvalidArgument, "INVALID_COLOR", "unknown color")
	ErrInvalidPawn       = newError(KindInvalidArgument, "INVALID_PAWN", "pawn index must be between 0 and 3")
	ErrInvalidRequest    = newError(KindInvalidArgument, "INVALID_REQUEST", "invalid request")
	ErrGameFinished      = newError(KindTerminalState, "GAME_ALREADY_FINISHED", "game already finished")
	ErrInternal          = newError(KindInternal, "INTERNAL", "internal error")

	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrSupervisorNotRunning = fmt.Errorf("supervisor is not running")
	ErrRoomClosed           = fmt.Errorf("room worker is closed")
	ErrEmptyWords           = fmt.Errorf("no words have been found")
	ErrInvalidPayload       = fmt.Errorf("invalid payload")
)

// Invalid wraps a validation failure while keeping the InvalidArgument kind.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

// KindOf returns the Kind of the first *Error found in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the stable code of the first *Error found in the chain.
func CodeOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrInternal.Code
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// MapToGRPCError converts a domain failure to a gRPC status, keeping the message for the client.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var code codes.Code
	switch KindOf(err) {
	case KindNotFound:
		code = codes.NotFound
	case KindConflict:
		code = codes.FailedPrecondition
		if Is(err, ErrColorTaken) || Is(err, ErrPlayerJoined) || Is(err, ErrPlayerInRoom) {
			code = codes.AlreadyExists
		}
	case KindForbidden:
		code = codes.PermissionDenied
	case KindInvalidArgument:
		code = codes.InvalidArgument
	case KindTerminalState:
		code = codes.FailedPrecondition
	default:
		code = codes.Internal
	}
	return status.Error(code, fmt.Sprintf("%s: %s", CodeOf(err), err.Error()))
}
