package identity

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

// Profile is the external identity as reported by the provider.
type Profile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Email         string `json:"email"`
	Verified      bool   `json:"verified"`
}

// Provider wraps the external OAuth2 identity provider: authorization-code
// exchange, profile fetch and the optional guild-join side channel.
type Provider struct {
	oauth    *oauth2.Config
	base     string
	client   *resty.Client
	botToken string
}

// RequiredScopes are the scopes a grant must carry for linking to proceed.
func RequiredScopes() []string {
	scopes := []string{"identify", "email"}
	if viper.GetBool(configkey.JoinGuildEnabled) {
		scopes = append(scopes, "guilds.join")
	}
	return scopes
}

func NewProvider() *Provider {
	base := strings.TrimSuffix(viper.GetString(configkey.ProviderURL), "/")
	link := strings.TrimSuffix(viper.GetString(configkey.OAuth2Link), "/")
	callbackPath := viper.GetString(configkey.OAuth2CallbackPath)
	if !strings.HasPrefix(callbackPath, "/") {
		callbackPath = "/" + callbackPath
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     viper.GetString(configkey.OAuth2ClientId),
			ClientSecret: viper.GetString(configkey.OAuth2ClientSecret),
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/oauth2/authorize",
				TokenURL: base + "/oauth2/token",
			},
			RedirectURL: link + callbackPath,
			Scopes:      RequiredScopes(),
		},
		base:     base,
		client:   resty.New(),
		botToken: viper.GetString(configkey.BotToken),
	}
}

// AuthCodeURL builds the provider's consent URL. promptNone suppresses the
// re-consent screen for returning users.
func (p *Provider) AuthCodeURL(state string, promptNone bool) string {
	var opts []oauth2.AuthCodeOption
	if promptNone {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", "none"))
	}
	return p.oauth.AuthCodeURL(state, opts...)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauth.Exchange(ctx, code)
}

// MissingScopes compares the scope string attached to a token against the
// required scopes and returns whichever are absent.
func MissingScopes(token *oauth2.Token) []string {
	granted, _ := token.Extra("scope").(string)

	var missing []string
	for _, required := range RequiredScopes() {
		if !strings.Contains(granted, required) {
			missing = append(missing, required)
		}
	}

	return missing
}

func (p *Provider) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	var profile Profile
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(p.base + "/users/@me")
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	if !resp.IsSuccess() {
		logrus.Errorf("profile fetch failed with status %d", resp.StatusCode())
		return nil, &LinkError{Code: CodeUnknown}
	}

	return &profile, nil
}

// JoinGuilds mirrors the identity into the configured guilds. Best effort:
// failures are logged and never abort linking.
func (p *Provider) JoinGuilds(ctx context.Context, token *oauth2.Token, userID string) {
	if !viper.GetBool(configkey.JoinGuildEnabled) {
		return
	}

	for _, guild := range viper.GetStringSlice(configkey.JoinGuildIds) {
		resp, err := p.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bot "+p.botToken).
			SetBody(map[string]string{"access_token": token.AccessToken}).
			Put(p.base + "/guilds/" + guild + "/members/" + userID)
		if err != nil {
			logrus.Error(err)
			continue
		}
		if !resp.IsSuccess() {
			logrus.Warnf("guild join for %s in %s returned status %d", userID, guild, resp.StatusCode())
		}
	}
}
