package api

import (
	"context"

	"github.com/go-faster/errors"
)

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
}

// Session はログインで発行されたセッション
type Session struct {
	SessionID  string `json:"session_id"`
	ValidUntil string `json:"valid_until,omitempty"`
}

// Login はユーザー名とパスワードでセッションを作成し、セッショントークンを返す
// このリクエストは Basic 認証を付けずに送る
func (c *Client) Login(ctx context.Context, user, password string) (string, error) {
	anon := *c
	anon.token = ""

	resp, err := anon.Post(ctx, "/system/sessions", sessionRequest{
		Username: user,
		Password: password,
		Host:     "",
	})
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var session Session
	if err := DecodeResponse(resp, &session); err != nil {
		return "", err
	}
	if session.SessionID == "" {
		return "", errors.New("login response did not contain a session id")
	}

	return session.SessionID, nil
}
