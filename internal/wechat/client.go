package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const jscode2sessionURL = "https://api.weixin.qq.com/sns/jscode2session"

// Client ходит в WeChat API для обмена кода входа на openId
type Client struct {
	appID      string
	appSecret  string
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый WeChat клиент
func NewClient(appID, appSecret string) *Client {
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: jscode2sessionURL,
	}
}

type sessionResponse struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// Resolve обменивает код wx.login на openId через jscode2session
func (c *Client) Resolve(ctx context.Context, code string) (string, error) {
	params := url.Values{}
	params.Set("appid", c.appID)
	params.Set("secret", c.appSecret)
	params.Set("js_code", code)
	params.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build wechat request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call wechat api: %w", err)
	}
	defer resp.Body.Close()

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("failed to decode wechat response: %w", err)
	}

	if session.ErrCode != 0 {
		return "", fmt.Errorf("wechat api error %d: %s", session.ErrCode, session.ErrMsg)
	}

	if session.OpenID == "" {
		return "", fmt.Errorf("wechat api returned empty openid")
	}

	return session.OpenID, nil
}
