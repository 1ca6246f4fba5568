// Package sessionguard owns client-side session state for CampusCraft
// applications: who is logged in, where their credentials persist, and
// whether the current user may enter a given view.
//
// A Guard wraps a campusclient.Client (or any API implementation), a
// CredentialStore for persistence across restarts, and a Navigator that
// receives the mandated login and logout redirects. Route authorization is
// expressed as a Decision value; the caller acts on it rather than the guard
// navigating on its own.
//
// All session mutations are serialized and generation-checked, so a login
// response that arrives after a later logout or login is discarded instead
// of clobbering newer state.
package sessionguard
