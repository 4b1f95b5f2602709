package api

import (
	"context"
	"encoding/json"
	"io"
)

func sharesPath(streamID string) string {
	return "/authz/shares/entities/" + ToGRN(EntityStream, streamID)
}

// PrepareShares はストリームに現在設定されている共有の全体を取得する
func (c *Client) PrepareShares(ctx context.Context, streamID string) (Capabilities, error) {
	// prepare は空のペイロードを要求する
	resp, err := c.Post(ctx, sharesPath(streamID)+"/prepare", struct{}{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	return decodeSelectedCapabilities(data)
}

// SubmitShares はストリームの共有の全体を送信する
// caps に含まれないエントリはサーバー側で削除される
func (c *Client) SubmitShares(ctx context.Context, streamID string, caps Capabilities) error {
	resp, err := c.Post(ctx, sharesPath(streamID), json.RawMessage(encodeSelectedCapabilities(caps)))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckResponse(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// GrantStreamAccess はストリームを teams に permission で共有する
func (c *Client) GrantStreamAccess(ctx context.Context, streamID, permission string, teams []Team) error {
	current, err := c.PrepareShares(ctx, streamID)
	if err != nil {
		return err
	}
	return c.SubmitShares(ctx, streamID, Grant(current, permission, teams))
}

// RevokeStreamAccess はストリームの teams への共有を解除する
// permission は GrantStreamAccess と引数を揃えるためのもので、削除には使わない
func (c *Client) RevokeStreamAccess(ctx context.Context, streamID, permission string, teams []Team) error {
	current, err := c.PrepareShares(ctx, streamID)
	if err != nil {
		return err
	}
	return c.SubmitShares(ctx, streamID, Revoke(current, teams))
}
