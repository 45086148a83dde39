package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

// DeviceFlowProvider implements the OAuth 2.0 device-authorization grant
// (RFC 8628), the standard federated-login flow for terminal clients: the
// user opens a verification URL in a browser, enters a short code, and the
// client polls the token endpoint until the grant is approved.
type DeviceFlowProvider struct {
	ClientID      string
	DeviceAuthURL string
	TokenURL      string
	Scope         string
	HTTPClient    *http.Client
	// Announce informs the user where to enter the code. Required.
	Announce func(userCode, verificationURL string)
	// PollOverride, when positive, replaces the server-suggested poll
	// interval. Used by tests.
	PollOverride time.Duration
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
	Interval        int    `json:"interval"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	Error       string `json:"error"`
}

func (p *DeviceFlowProvider) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func (p *DeviceFlowProvider) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	// OAuth endpoints report flow state (pending, denied, ...) in the JSON
	// body with a non-2xx status, so decode before checking the code.
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", endpoint, resp.StatusCode, err)
	}
	return nil
}

// Authenticate runs the device grant to completion: request a device code,
// announce it to the user, poll the token endpoint, and extract identity
// claims from the returned ID token.
func (p *DeviceFlowProvider) Authenticate(ctx context.Context) (*Identity, error) {
	var dc deviceCodeResponse
	form := url.Values{
		"client_id": {p.ClientID},
		"scope":     {p.Scope},
	}
	if err := p.postForm(ctx, p.DeviceAuthURL, form, &dc); err != nil {
		return nil, fmt.Errorf("device code request: %w", err)
	}
	if dc.DeviceCode == "" || dc.UserCode == "" {
		return nil, fmt.Errorf("device code request: empty response")
	}

	verificationURL := dc.VerificationURL
	if verificationURL == "" {
		verificationURL = dc.VerificationURI
	}
	p.Announce(dc.UserCode, verificationURL)

	interval := time.Duration(dc.Interval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if p.PollOverride > 0 {
		interval = p.PollOverride
	}

	for {
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}

		var tok tokenResponse
		form := url.Values{
			"client_id":   {p.ClientID},
			"device_code": {dc.DeviceCode},
			"grant_type":  {deviceGrantType},
		}
		if err := p.postForm(ctx, p.TokenURL, form, &tok); err != nil {
			return nil, fmt.Errorf("token request: %w", err)
		}

		switch tok.Error {
		case "":
			return identityFromIDToken(tok.IDToken)
		case "authorization_pending":
			continue
		case "slow_down":
			interval += 5 * time.Second
		case "access_denied":
			return nil, ErrAccessDenied
		case "expired_token":
			return nil, ErrCodeExpired
		default:
			return nil, fmt.Errorf("token request: %s", tok.Error)
		}
	}
}

// identityFromIDToken extracts profile claims from the ID token. The token
// was just received from the issuer's token endpoint over TLS, so its
// signature is not re-verified here.
func identityFromIDToken(idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("token response carried no id_token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("parse id_token: %w", err)
	}

	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}

	id := &Identity{
		Subject: str("sub"),
		Email:   str("email"),
		Name:    str("name"),
		Picture: str("picture"),
	}
	if id.Subject == "" {
		return nil, fmt.Errorf("id_token carried no subject")
	}
	return id, nil
}
