// Package common contains shared constants and sentinel errors used across
// lifeshare components.
package common

// AuthHeaderName is the HTTP header that carries the access token on inbound
// requests and, after a silent renewal, on outbound responses.
const AuthHeaderName = "Authorization"

// TokenType is the scheme prefix expected in the Authorization header.
const TokenType = "Bearer"

// RefreshTokenCookieName is the cookie that carries the refresh token. The
// refresh token travels only in this cookie, never in a body or header.
const RefreshTokenCookieName = "refreshToken"
