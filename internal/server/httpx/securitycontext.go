// Package httpx implements the HTTP transport: the per-request
// authentication gate, the refresh-token cookie store, the auth endpoints,
// and the cross-cutting response middleware.
package httpx

import "github.com/gin-gonic/gin"

// securityContextKey is the gin context key the gate stores the resolved
// identity under.
const securityContextKey = "securityContext"

// Diagnostic flags the gate records for downstream authorization and
// debugging. They never change the outcome of the request at this layer.
const (
	FlagInvalidTokenFormat  = "invalid-jwt-format"
	FlagInvalidToken        = "invalid-jwt"
	FlagTokenExpired        = "token-expired"
	FlagInvalidRefreshToken = "invalid-refresh-token"
)

// SecurityContext is the request-scoped identity resolved by the gate.
// Created fresh per request and never shared across requests. Authorities is
// always empty in the current product (role-less model).
type SecurityContext struct {
	Subject     string
	Authorities []string
}

// SecurityContextFrom returns the security context populated by the gate,
// if any.
func SecurityContextFrom(c *gin.Context) (*SecurityContext, bool) {
	v, ok := c.Get(securityContextKey)
	if !ok {
		return nil, false
	}
	sc, ok := v.(*SecurityContext)
	return sc, ok
}

func setSecurityContext(c *gin.Context, sc *SecurityContext) {
	c.Set(securityContextKey, sc)
}
