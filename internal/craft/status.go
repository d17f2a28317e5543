package craft

import (
	"errors"
	"fmt"
)

// StatusCode classifies the outcome of processing an item.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusWarning
	StatusCraftingError
	StatusInternalError
)

// String returns human-readable status code name.
func (c StatusCode) String() string {
	switch c {
	case StatusSuccess:
		return "Success"
	case StatusWarning:
		return "Warning"
	case StatusCraftingError:
		return "CraftingError"
	case StatusInternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Errors.
var (
	ErrUnsupportedItemClass = errors.New("unsupported item class")
	ErrUnsupportedRarity    = errors.New("unsupported rarity")
	ErrNoMatchingBaseGroup  = errors.New("no matching base group")
	ErrCorruptTierData      = errors.New("corrupt tier data")
	ErrNothingToProcess     = errors.New("nothing to process")
	ErrInternal             = errors.New("internal error")
)

// Status is the result classification handed to the presentation layer.
// Err carries the underlying cause for errors.Is checks; it is nil on
// success.
type Status struct {
	Code    StatusCode
	Message string
	Err     error
}

// OK reports whether the status is a success.
func (s Status) OK() bool {
	return s.Code == StatusSuccess
}

func (s Status) String() string {
	return s.Code.String() + ": " + s.Message
}

func success(msg string) Status {
	return Status{Code: StatusSuccess, Message: msg}
}

func warning(err error, msg string) Status {
	return Status{Code: StatusWarning, Message: msg, Err: err}
}

func craftingError(err error, msg string) Status {
	return Status{Code: StatusCraftingError, Message: msg, Err: err}
}

func internalError(err error, msg string) Status {
	return Status{Code: StatusInternalError, Message: msg, Err: err}
}
