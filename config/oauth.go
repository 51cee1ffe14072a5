package config

type OAuthProvider struct {
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
}

// OAuth 第三方登录
type OAuth struct {
	// RedirectBase 回调地址前缀, 例如 https://shop.example.com
	RedirectBase string        `json:"redirect_base" yaml:"redirect_base"`
	Google       OAuthProvider `json:"google" yaml:"google"`
	Facebook     OAuthProvider `json:"facebook" yaml:"facebook"`
}
