// Package security holds the HTTP middleware that protects catalog forms:
// CSRF tokens (gorilla/csrf), response security headers, and scs sessions
// used for one-shot flash messages.
//
// Middleware order matters: CSRF must run before the session middleware so
// the session context survives CSRF's request replacement.
package security
