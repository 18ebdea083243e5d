package model

import "github.com/electr1fy0/smartnotes/session"

func (v viewID) protected() bool {
	return v == viewNotes
}

// guard sends protected targets to the login view when no token is stored.
// The token is not validated; the backend is the real authority.
func guard(target viewID, store session.Store) viewID {
	if target.protected() && store.Token() == "" {
		return viewLogin
	}
	return target
}
