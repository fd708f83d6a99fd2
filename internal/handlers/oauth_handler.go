package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	stateCookie    = "oauth_state"
	callbackCookie = "oauth_callback"
	cookieMaxAge   = 600
)

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	SecureCookie bool

	// AllowedOrigins are the scheme://host[:port] values a callbackUrl may
	// point at. Empty means no callbackUrl is accepted.
	AllowedOrigins []string
}

// OAuthHandler runs the Google authorization-code flow and exchanges the
// resulting profile for one of our bearer tokens.
type OAuthHandler struct {
	conf        *oauth2.Config
	login       *ucAuth.GoogleLogin
	userInfoURL string
	secure      bool
	origins     map[string]bool
}

func NewOAuthHandler(cfg GoogleOAuthConfig, login *ucAuth.GoogleLogin) *OAuthHandler {
	return &OAuthHandler{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		login:       login,
		userInfoURL: googleUserInfoURL,
		secure:      cfg.SecureCookie,
		origins:     originSet(cfg.AllowedOrigins),
	}
}

// Start redirects to Google. An optional callbackUrl query parameter is where
// the browser is sent with the token once the flow completes.
func (h *OAuthHandler) Start(c *gin.Context) {
	if cb := c.Query("callbackUrl"); cb != "" {
		if !h.allowedCallback(cb) {
			httperr.BadRequest(c, "invalid_callback_url", "Invalid callback URL")
			return
		}
		c.SetCookie(callbackCookie, cb, cookieMaxAge, "/", "", h.secure, true)
	}

	state := uuid.NewString()
	c.SetCookie(stateCookie, state, cookieMaxAge, "/", "", h.secure, true)

	c.Redirect(http.StatusFound, h.conf.AuthCodeURL(state))
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		httperr.Respond(c, httperr.Unauthenticated("invalid_oauth_state", "Invalid OAuth state"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.secure, true)

	code := c.Query("code")
	if code == "" {
		httperr.Respond(c, httperr.Unauthenticated("oauth_denied", "Google login was cancelled"))
		return
	}

	ctx := c.Request.Context()
	tok, err := h.conf.Exchange(ctx, code)
	if err != nil {
		httperr.Respond(c, httperr.Unauthenticated("oauth_exchange_failed", "Google login failed"))
		return
	}

	profile, err := h.fetchProfile(c, tok)
	if err != nil {
		httperr.Respond(c, httperr.Internal("oauth_userinfo_failed", err))
		return
	}

	out, err := h.login.Execute(ctx, *profile)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	cb, err := c.Cookie(callbackCookie)
	if err != nil || cb == "" || !h.allowedCallback(cb) {
		httpresp.OK(c, out)
		return
	}
	c.SetCookie(callbackCookie, "", -1, "/", "", h.secure, true)

	target, err := withToken(cb, out.Token)
	if err != nil {
		httpresp.OK(c, out)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (h *OAuthHandler) fetchProfile(c *gin.Context, tok *oauth2.Token) (*ucAuth.GoogleProfile, error) {
	client := h.conf.Client(c.Request.Context(), tok)

	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var p ucAuth.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func originSet(origins []string) map[string]bool {
	set := make(map[string]bool, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(strings.TrimSpace(o)); err == nil && u.Host != "" {
			set[strings.ToLower(u.Scheme+"://"+u.Host)] = true
		}
	}
	return set
}

// allowedCallback accepts absolute http(s) URLs whose origin is allow-listed.
func (h *OAuthHandler) allowedCallback(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.User != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return h.origins[strings.ToLower(u.Scheme+"://"+u.Host)]
}

func withToken(raw, token string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
