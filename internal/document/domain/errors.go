package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidKind       = errors.New("invalid_kind")
	ErrInvalidConcept    = errors.New("invalid_concept")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrNotEditable       = errors.New("not_editable")
	ErrNotFound          = errors.New("not_found")
	ErrLineNotFound      = errors.New("line_not_found")
	ErrNotInvoice        = errors.New("not_invoice")
	ErrNotQuote          = errors.New("not_quote")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrOverpayment       = errors.New("overpayment")
	ErrQuoteNotAccepted  = errors.New("quote_not_accepted")
)
