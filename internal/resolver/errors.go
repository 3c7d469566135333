package resolver

import (
	"errors"
	"net/url"
)

var (
	// ErrNoRoute means the query carried none of the addressing parameters.
	ErrNoRoute = errors.New("no channel, match, event or virtual channel in request")

	// ErrDecode means an encoded payload (virtual channel or stream link)
	// could not be decoded. This is fatal for the request, never silently
	// swallowed.
	ErrDecode = errors.New("malformed encoded payload")

	// ErrNotFound means the addressed channel or event does not exist, or
	// exists but has nothing playable.
	ErrNotFound = errors.New("no stream found for request")
)

// RedirectError tells the caller to perform a full navigation to the
// canonical URL instead of rendering a player. Raised when a match is
// addressed without a usable channel name, so the user lands on a
// bookmarkable URL naming the first available option.
type RedirectError struct {
	Query url.Values
}

func (e *RedirectError) Error() string {
	return "redirect to canonical location: ?" + e.Query.Encode()
}
