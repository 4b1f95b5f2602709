package api

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// PageSize は一覧取得時の1ページあたりの件数（1ページ目のみ取得する）
const PageSize = 100

// Team はチーム情報
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

// listQuery は一覧系エンドポイント共通のクエリを作る
// query が空でなければ検索条件として付与する（部分一致検索）
func listQuery(query string) url.Values {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("sort", "name")
	q.Set("order", "asc")
	if query != "" {
		q.Set("query", query)
	}
	return q
}

func (c *Client) teamsPath() string {
	return "/" + c.pluginsPath + "/teams"
}

func (c *Client) searchTeams(ctx context.Context, query string) ([]Team, error) {
	resp, err := c.Get(ctx, c.teamsPath(), listQuery(query))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body teamsResponse
	if err := DecodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return body.Teams, nil
}

// ListTeams はチーム一覧を名前順で取得する
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	teams, err := c.searchTeams(ctx, "")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(teams, func(a, b Team) int {
		return strings.Compare(a.Name, b.Name)
	})
	return teams, nil
}

// FindTeam は名前でチームを検索し、最初に一致したものを返す
// 検索は部分一致なので、意図しないチームが返る可能性がある
func (c *Client) FindTeam(ctx context.Context, name string) (*Team, error) {
	teams, err := c.searchTeams(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, &NotFoundError{Kind: EntityTeam, Name: name}
	}
	return &teams[0], nil
}
