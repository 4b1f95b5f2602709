package api

import (
	"context"
	"slices"
	"strings"
)

// Stream はストリーム情報
type Stream struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type streamsResponse struct {
	Streams []Stream `json:"streams"`
}

func (c *Client) searchStreams(ctx context.Context, query string) ([]Stream, error) {
	resp, err := c.Get(ctx, "/streams/paginated", listQuery(query))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body streamsResponse
	if err := DecodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return body.Streams, nil
}

// ListStreams はストリーム一覧をタイトル順で取得する
func (c *Client) ListStreams(ctx context.Context) ([]Stream, error) {
	streams, err := c.searchStreams(ctx, "")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(streams, func(a, b Stream) int {
		return strings.Compare(a.Title, b.Title)
	})
	return streams, nil
}

// FindStream はタイトルでストリームを検索し、最初に一致したものを返す
func (c *Client) FindStream(ctx context.Context, title string) (*Stream, error) {
	streams, err := c.searchStreams(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(streams) == 0 {
		return nil, &NotFoundError{Kind: EntityStream, Name: title}
	}
	return &streams[0], nil
}

// SearchURL はストリームの検索画面のURLを返す
func (c *Client) SearchURL(streamID string) string {
	return c.WebURL() + "/streams/" + streamID + "/search"
}
