package board

import "errors"

// Kind classifies board errors so transports can pick a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindCapacity
	KindNotFound
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity_exceeded"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// ===== Column Errors =====
var (
	ErrColumnNameRequired = &Error{KindValidation, "Column name is required"}
	ErrColumnNameTooLong  = &Error{KindValidation, "Column name must be at most 80 characters"}
	ErrColumnExists       = &Error{KindConflict, "A column with this name already exists for this user"}
	ErrColumnLimit        = &Error{KindCapacity, "Cannot create more than 10 columns for this user"}
	ErrColumnNotFound     = &Error{KindNotFound, "Column not found or you do not have permission to access it"}
	ErrColumnMissing      = &Error{KindNotFound, "Column not found"}
)

// ===== Card Errors =====
var (
	ErrCardTitleRequired       = &Error{KindValidation, "Title is required"}
	ErrCardTitleTooLong        = &Error{KindValidation, "Title must be at most 100 characters"}
	ErrCardDescriptionTooLong  = &Error{KindValidation, "Description must be at most 200 characters"}
	ErrCardExists              = &Error{KindConflict, "A card with this title already exists in this column"}
	ErrCardLimit               = &Error{KindCapacity, "Cannot create more than 10 cards in this column"}
	ErrCardNotFound            = &Error{KindNotFound, "Card not found"}
	ErrCardNotInColumn         = &Error{KindNotFound, "Card not found in this column"}
	ErrNoCards                 = &Error{KindNotFound, "No cards found in this column"}
	ErrNoCardsMatching         = &Error{KindNotFound, "No cards found in this column matching the title"}
	ErrCardForbidden           = &Error{KindForbidden, "You do not have permission to access this card"}
	ErrColumnNotWritable       = &Error{KindForbidden, "Column not found or you do not have permission to add a card to it"}
	ErrTargetColumnUnavailable = &Error{KindForbidden, "The specified column does not exist or you do not have permission to access it"}
)
