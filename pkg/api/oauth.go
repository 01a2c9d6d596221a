package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/identity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// login kicks off the authorization-code flow. A ?redirect=path query is
// carried through the OAuth state so the callback can send the browser back
// where it came from.
func (a *API) login(c *gin.Context) {
	state := ""
	if redirect := c.Query("redirect"); redirect != "" {
		state = "/" + redirect
	}

	promptNone := !viper.GetBool(configkey.OAuth2Prompt) || c.Query("prompt") == "none"
	c.Redirect(http.StatusFound, a.provider.AuthCodeURL(state, promptNone))
}

func (a *API) logout(c *gin.Context) {
	c.Redirect(http.StatusFound, a.theme.RedirectLogout)
}

// callback finishes the flow: token exchange, scope check, profile fetch,
// then identity linking. Every failure redirects to the theme's failure
// destination with a machine-readable err code.
func (a *API) callback(c *gin.Context) {
	failed := a.theme.RedirectFailed

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, failed+"?err="+identity.CodeMissingCode)
		return
	}

	token, err := a.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		logrus.Error(err)
		c.Redirect(http.StatusFound, failed+"?err="+identity.CodeInvalidCode)
		return
	}

	if missing := identity.MissingScopes(token); len(missing) > 0 {
		c.Redirect(http.StatusFound,
			failed+"?err="+identity.CodeMissingScopes+"&scopes="+url.QueryEscape(strings.Join(missing, " ")))
		return
	}

	profile, err := a.provider.FetchProfile(c.Request.Context(), token)
	if err != nil {
		c.Redirect(http.StatusFound, failed+"?err="+identity.CodeUnknown)
		return
	}

	panelID, _, err := a.linker.LinkOrCreate(profile, a.clientOrigin(c))
	if err != nil {
		reason := identity.CodeUnknown
		var linkErr *identity.LinkError
		if errors.As(err, &linkErr) {
			reason = linkErr.Code
		}
		c.Redirect(http.StatusFound, failed+"?err="+reason)
		return
	}

	a.provider.JoinGuilds(c.Request.Context(), token, profile.ID)

	if _, err := a.panel.GetUser(panelID); err != nil {
		c.Redirect(http.StatusFound, failed+"?err="+identity.CodeCannotGetInfo)
		return
	}

	destination := a.theme.RedirectCallback
	if state := c.Query("state"); strings.HasPrefix(state, "/") {
		destination = state
	}
	c.Redirect(http.StatusFound, destination)
}

func (a *API) clientOrigin(c *gin.Context) string {
	if viper.GetBool(configkey.IPTrustForwarded) {
		if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
			return strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
	}

	return c.ClientIP()
}
