package accounts

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidAccountName is returned before any command runs with a suspicious name.
var ErrInvalidAccountName = errors.New("invalid account name")

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{0,63}$`)

// ValidateName checks an account name before it is passed to the management plane.
func ValidateName(name string) error {
	if !accountNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountName, name)
	}
	return nil
}

// DirectoryError wraps a failed or malformed account/key listing.
type DirectoryError struct {
	Op      string // list | keys | login
	Account string
	Err     error
}

func (e *DirectoryError) Error() string {
	if e.Account != "" {
		return fmt.Sprintf("directory %s %s: %v", e.Op, e.Account, e.Err)
	}
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }
