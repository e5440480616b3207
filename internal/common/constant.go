// Package common contains shared constants and sentinel errors used across
// the notebook server and client.
package common

// AuthTokenHeaderName is the HTTP header that carries the signed session
// token on protected requests.
const AuthTokenHeaderName = "auth-token"

// DefaultNoteTag is assigned to notes created without a tag.
const DefaultNoteTag = "General"
