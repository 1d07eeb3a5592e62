package forms

import "errors"

var (
	ErrInvalidEntry = errors.New("forms: invalid form mapping entry")
	ErrReadFile     = errors.New("forms: failed to read mapping file")
	ErrDecodeFile   = errors.New("forms: failed to decode mapping file")
	ErrEmpty        = errors.New("forms: mapping has no entries")
)
