package handler

import (
	"encoding/json"
	"net/http"

	"user-messaging-backend/internal/config"
	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauth_state"
	userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// OAuthHandler drives the Google authorization-code flow. Google does the
// actual authentication; this handler only maps the verified identity to a
// local account and hands out an access token.
type OAuthHandler struct {
	auth *service.AuthService
	conf *oauth2.Config
}

func NewOAuthHandler(auth *service.AuthService, cfg config.OAuthConfig) *OAuthHandler {
	return &OAuthHandler{
		auth: auth,
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GoogleLogin redirects the client to Google's consent screen
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state, err := utils.RandomHex(16)
	if err != nil {
		internalError(c, err)
		return
	}

	// State round-trips via cookie to bind the callback to this browser
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.conf.AuthCodeURL(state))
}

type googleUserinfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, fetches the verified
// profile, and resolves it to a local account
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	wantState, err := c.Cookie(oauthStateCookie)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid OAuth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Authorization code missing")
		return
	}

	token, err := h.conf.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Code exchange failed")
		return
	}

	info, err := h.fetchUserinfo(c, token)
	if err != nil {
		internalError(c, err)
		return
	}
	if info.Email == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Google account has no email")
		return
	}

	user, err := h.auth.ResolveExternalIdentity(info.Email, info.Name)
	if err != nil {
		internalError(c, err)
		return
	}

	accessToken, err := h.auth.IssueAccessToken(user)
	if err != nil {
		internalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Google login success",
		"token":   accessToken,
	})
}

func (h *OAuthHandler) fetchUserinfo(c *gin.Context, token *oauth2.Token) (*googleUserinfo, error) {
	client := h.conf.Client(c.Request.Context(), token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
