package services

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Callers branch on the kind, not
// the message: cart and policy kinds mean the request must change
// before retrying, KindStorage means the store was unavailable and the
// same request may be retried with backoff.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidQuantity   Kind = "invalid_quantity"
	KindItemNotFound      Kind = "item_not_found"
	KindItemUnavailable   Kind = "item_unavailable"
	KindIllegalTransition Kind = "illegal_transition"
	KindIllegalDeletion   Kind = "illegal_deletion"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindStorage           Kind = "storage_unavailable"
)

// Error is a typed operation failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func errInvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Msg: msg}
}

func errInvalidQuantity(menuItemID int64, qty int) error {
	return &Error{Kind: KindInvalidQuantity, Msg: fmt.Sprintf("quantity %d for menu item %d must be between 1 and %d", qty, menuItemID, maxLineItemQuantity)}
}

func errItemNotFound(menuItemID int64) error {
	return &Error{Kind: KindItemNotFound, Msg: fmt.Sprintf("menu item %d not found", menuItemID)}
}

func errItemUnavailable(menuItemID int64) error {
	return &Error{Kind: KindItemUnavailable, Msg: fmt.Sprintf("menu item %d is not available", menuItemID)}
}

func errIllegalTransition(from, to string) error {
	return &Error{Kind: KindIllegalTransition, Msg: fmt.Sprintf("cannot transition order from %q to %q", from, to)}
}

func errIllegalDeletion(msg string) error {
	return &Error{Kind: KindIllegalDeletion, Msg: msg}
}

func errForbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func errOrderNotFound(orderID string) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("order %s not found", orderID)}
}

// storageErr wraps a store failure so callers can recognise it as
// transient and retriable.
func storageErr(op string, err error) error {
	return &Error{Kind: KindStorage, Msg: op, Err: err}
}
