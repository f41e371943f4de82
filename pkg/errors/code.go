package errors

import (
	"fmt"
	"regexp"
)

// Code represents a validated error code with a package prefix.
type Code struct {
	value string
}

// Common error codes shared across packages.
var (
	CommonInternal     = MustNewCode("common.internal")
	CommonNotFound     = MustNewCode("common.not_found")
	CommonInvalidInput = MustNewCode("common.invalid_input")
	CommonUnsupported  = MustNewCode("common.unsupported")
)

// Validation regex: package.name format.
var codeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// NewCode creates a new validated Code.
func NewCode(s string) (Code, error) {
	if !codeRegex.MatchString(s) {
		return Code{}, fmt.Errorf("invalid code format '%s': must be 'package.name' (lowercase, underscores, dots only)", s)
	}
	return Code{value: s}, nil
}

// MustNewCode creates a new Code or panics if invalid.
func MustNewCode(s string) Code {
	code, err := NewCode(s)
	if err != nil {
		panic(err)
	}
	return code
}

// String returns the string representation of the Code.
func (c Code) String() string {
	return c.value
}

// IsZero reports whether the code is the zero value.
func (c Code) IsZero() bool {
	return c.value == ""
}
