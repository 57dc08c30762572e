package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parksujin/lifeshare/internal/common"
	"github.com/parksujin/lifeshare/internal/logging"
	"github.com/parksujin/lifeshare/internal/server/auth"
	"github.com/parksujin/lifeshare/internal/server/services"
)

// Gate is the per-request authentication interceptor. It extracts the bearer
// token, validates it, silently renews an expired access token when a valid
// refresh cookie is present, and populates the request security context.
//
// The gate never terminates a request: every failure path records a
// diagnostic flag and lets the request continue unauthenticated. Rejection is
// the job of downstream authorization using the context this gate populated
// or left empty.
type Gate struct {
	codec    *auth.Codec
	svc      *services.AuthService
	sessions SessionStore
	logger   logging.Logger
}

func NewGate(codec *auth.Codec, svc *services.AuthService, sessions SessionStore, logger logging.Logger) *Gate {
	return &Gate{codec: codec, svc: svc, sessions: sessions, logger: logger}
}

// Handler returns the gin middleware form of the gate.
func (g *Gate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Idempotent: never overwrite a context populated earlier in the
		// pipeline.
		if _, ok := SecurityContextFrom(c); ok {
			c.Next()
			return
		}

		header := c.GetHeader(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.TokenType+" ") {
			// anonymous request; downstream authorization decides
			g.logger.Debug(c.Request.Context(), "no bearer token present")
			c.Next()
			return
		}

		token := strings.TrimSpace(header[len(common.TokenType)+1:])

		// Cheap structural check before any cryptographic work.
		if !auth.WellFormed(token) {
			g.logger.Debug(c.Request.Context(), "skipping token parse, invalid format")
			c.Set(FlagInvalidTokenFormat, true)
			c.Next()
			return
		}

		claims, err := g.codec.Parse(token)
		switch {
		case err != nil:
			g.logger.Warn(c.Request.Context(), "invalid token, authentication skipped")
			c.Set(FlagInvalidToken, true)
		case g.codec.IsExpired(claims):
			g.logger.Info(c.Request.Context(), "access token expired", "userId", claims.Subject)
			c.Set(FlagTokenExpired, true)
			g.tryRefresh(c)
		default:
			g.authenticate(c, claims.Subject)
		}

		c.Next()
	}
}

// authenticate resolves the subject's identity and populates the security
// context. An unresolvable identity leaves the request unauthenticated.
func (g *Gate) authenticate(c *gin.Context, subject string) {
	if _, err := g.svc.Identity(c.Request.Context(), subject); err != nil {
		g.logger.Warn(c.Request.Context(), "identity resolution failed", "userId", subject)
		return
	}
	setSecurityContext(c, &SecurityContext{Subject: subject})
}

// tryRefresh attempts a silent renewal from the refresh cookie. On success it
// rotates the full pair: new access token on the response Authorization
// header, new refresh token on the response cookie. The superseded refresh
// token is not revoked server-side.
func (g *Gate) tryRefresh(c *gin.Context) {
	raw, ok := g.sessions.Read(c.Request)
	if !ok {
		return
	}

	claims, err := g.codec.Parse(raw)
	if err == nil {
		err = g.codec.CheckExpiry(claims)
	}
	if err != nil {
		g.logger.Warn(c.Request.Context(), "refresh token invalid or expired, cannot re-issue access token")
		c.Set(FlagInvalidRefreshToken, true)
		return
	}

	tokens, user, err := g.svc.Renew(c.Request.Context(), claims.Subject)
	if err != nil {
		g.logger.Warn(c.Request.Context(), "token renewal failed", "userId", claims.Subject)
		c.Set(FlagInvalidRefreshToken, true)
		return
	}

	c.Writer.Header().Set(common.AuthHeaderName, common.TokenType+" "+tokens.AccessToken)
	g.sessions.Create(c.Writer, tokens.RefreshToken)

	setSecurityContext(c, &SecurityContext{Subject: user.ID})
	g.logger.Info(c.Request.Context(), "access token renewed", "userId", user.ID)
}
