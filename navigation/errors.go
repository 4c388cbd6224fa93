package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateGroupIdentity is matched by DuplicateGroupIdentityError.
	ErrDuplicateGroupIdentity = errors.New("duplicate group identity")
	// ErrUnknownGroupIdentity is matched by UnknownGroupIdentityError.
	ErrUnknownGroupIdentity = errors.New("unknown group identity")
)

// DuplicateGroupIdentityError is returned when a tree is built from groups
// that share a title.
type DuplicateGroupIdentityError struct {
	Title string
}

func (e *DuplicateGroupIdentityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateGroupIdentity, e.Title)
}

func (e *DuplicateGroupIdentityError) Is(target error) bool {
	return target == ErrDuplicateGroupIdentity
}

// UnknownGroupIdentityError is returned when a title does not name a group
// in the backing tree.
type UnknownGroupIdentityError struct {
	Title string
}

func (e *UnknownGroupIdentityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownGroupIdentity, e.Title)
}

func (e *UnknownGroupIdentityError) Is(target error) bool {
	return target == ErrUnknownGroupIdentity
}
