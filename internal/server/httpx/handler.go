package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parksujin/lifeshare/internal/common"
	"github.com/parksujin/lifeshare/internal/logging"
	"github.com/parksujin/lifeshare/internal/server/auth"
	"github.com/parksujin/lifeshare/internal/server/services"
)

// Handler serves the authentication endpoints.
type Handler struct {
	authSvc  *services.AuthService
	userSvc  *services.UserService
	keys     *auth.KeyProvider
	codec    *auth.Codec
	sessions SessionStore
	logger   logging.Logger
}

func NewHandler(authSvc *services.AuthService, userSvc *services.UserService,
	keys *auth.KeyProvider, codec *auth.Codec, sessions SessionStore, logger logging.Logger) *Handler {
	return &Handler{
		authSvc:  authSvc,
		userSvc:  userSvc,
		keys:     keys,
		codec:    codec,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.login)
	r.POST("/auth/logout", h.logout)
	r.GET("/auth/pubkey", h.publicKey)
	r.GET("/auth/me", h.me)
}

type loginRequest struct {
	UserID string `json:"userId" binding:"required"`
	Pwd    string `json:"pwd" binding:"required"`
}

// login handles POST /auth/login. The pwd field arrives RSA-encrypted with
// the published public key, base64-encoded.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"login": false, "msg": "userId와 pwd는 필수 입력값입니다."})
		return
	}

	res := h.authSvc.Login(c.Request.Context(), req.UserID, req.Pwd)
	if !res.Success {
		c.JSON(http.StatusOK, gin.H{"login": false, "msg": res.Message})
		return
	}

	c.Writer.Header().Set(common.AuthHeaderName, common.TokenType+" "+res.Tokens.AccessToken)
	h.sessions.Create(c.Writer, res.Tokens.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"login": true, "user": res.User})
}

// logout handles POST /auth/logout: stamps the last-logout time and clears
// the refresh cookie. Responds with a bare boolean; a request with no
// resolvable subject yields false, never an error.
func (h *Handler) logout(c *gin.Context) {
	subject := h.resolveSubject(c)

	ok := h.authSvc.Logout(c.Request.Context(), subject)
	if ok {
		if _, present := h.sessions.Read(c.Request); present {
			h.sessions.Invalidate(c.Writer)
			h.logger.Info(c.Request.Context(), "refresh token cookie cleared", "userId", subject)
		} else {
			h.logger.Warn(c.Request.Context(), "no refresh token cookie found for logout request")
		}
	}

	c.JSON(http.StatusOK, ok)
}

// publicKey handles GET /auth/pubkey.
func (h *Handler) publicKey(c *gin.Context) {
	key, err := h.keys.PublicKey()
	if err != nil {
		h.logger.Error(c.Request.Context(), "public key encoding failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"msg": services.MsgServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": key})
}

// me handles GET /auth/me. This endpoint requires an identity: it is the
// authorization decision the gate itself never makes.
func (h *Handler) me(c *gin.Context) {
	sc, ok := SecurityContextFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), sc.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": services.MsgServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// resolveSubject finds the current subject: the security context first, then
// a token freshly attached to the response by a silent renewal, then the
// inbound header. Expired tokens still resolve; logging out with a stale
// access token is allowed.
func (h *Handler) resolveSubject(c *gin.Context) string {
	if sc, ok := SecurityContextFrom(c); ok {
		return sc.Subject
	}

	for _, header := range []string{
		c.Writer.Header().Get(common.AuthHeaderName),
		c.GetHeader(common.AuthHeaderName),
	} {
		if len(header) <= len(common.TokenType)+1 {
			continue
		}
		token := header[len(common.TokenType)+1:]
		if claims, err := h.codec.Parse(token); err == nil {
			return claims.Subject
		}
	}
	return ""
}
