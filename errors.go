package art

import "errors"

// ErrPrefixLenExceedsWidth is returned by Insert/Delete when the given
// prefix's length exceeds the root's configured address width (alen).
// Both always report it, wrapped with the offending lengths, instead of
// ignoring the prefix silently; test for it with errors.Is.
var ErrPrefixLenExceedsWidth = errors.New("art: prefix length exceeds address width")
