package service

import (
	"Storefront/config"
	"Storefront/types"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

type oauthProvider struct {
	conf        *oauth2.Config
	userInfoURL string
	// 用户信息里 ID 和邮箱的 gjson 路径
	subjectPath string
	emailPath   string
}

var _ IOAuthService = (*OAuthService)(nil)

type IOAuthService interface {
	AuthCodeURL(provider, state string) (string, error)
	// Exchange 用授权码换取 token 并读取第三方用户信息
	Exchange(ctx context.Context, provider, code string) (*types.OAuthProfile, error)
}

type OAuthService struct {
	providers map[string]*oauthProvider
}

func NewOAuthService(conf *config.Config) *OAuthService {
	redirect := func(name string) string {
		return fmt.Sprintf("%s/api/v1/auth/oauth/%s/callback", conf.OAuth.RedirectBase, name)
	}

	providers := make(map[string]*oauthProvider)
	if c := conf.OAuth.Google; c.ClientID != "" {
		providers[ProviderGoogle] = &oauthProvider{
			conf: &oauth2.Config{
				ClientID:     c.ClientID,
				ClientSecret: c.ClientSecret,
				Endpoint:     endpoints.Google,
				RedirectURL:  redirect(ProviderGoogle),
				Scopes:       []string{"openid", "email", "profile"},
			},
			userInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
			subjectPath: "sub",
			emailPath:   "email",
		}
	}
	if c := conf.OAuth.Facebook; c.ClientID != "" {
		providers[ProviderFacebook] = &oauthProvider{
			conf: &oauth2.Config{
				ClientID:     c.ClientID,
				ClientSecret: c.ClientSecret,
				Endpoint:     endpoints.Facebook,
				RedirectURL:  redirect(ProviderFacebook),
				Scopes:       []string{"email", "public_profile"},
			},
			userInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
			subjectPath: "id",
			emailPath:   "email",
		}
	}
	return &OAuthService{providers: providers}
}

func (s *OAuthService) provider(name string) (*oauthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, ErrUnsupportedProvider
	}
	return p, nil
}

func (s *OAuthService) AuthCodeURL(provider, state string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *OAuthService) Exchange(ctx context.Context, provider, code string) (*types.OAuthProfile, error) {
	p, err := s.provider(provider)
	if err != nil {
		return nil, err
	}
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	resp, err := p.conf.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s userinfo: status %d", provider, resp.StatusCode)
	}
	return parseProfile(provider, p, body)
}

func parseProfile(provider string, p *oauthProvider, body []byte) (*types.OAuthProfile, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s userinfo: invalid json", provider)
	}
	res := gjson.GetManyBytes(body, p.subjectPath, p.emailPath)
	profile := &types.OAuthProfile{
		Provider: provider,
		Subject:  res[0].String(),
		Email:    res[1].String(),
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: %s account has no email", ErrInvalidCredentials, provider)
	}
	return profile, nil
}
