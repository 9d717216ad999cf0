package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gauthier-se/Checkpoint/internal/model"
)

// Games fetches one catalog page. page is the API's 0-based page index; the
// 1-based URL page is translated before it reaches this boundary.
func (c *Client) Games(ctx context.Context, page, size int) (model.PagedResponse[model.Game], error) {
	var out model.PagedResponse[model.Game]
	path := fmt.Sprintf("/api/games?page=%d&size=%d", page, size)
	if err := c.getJSON(ctx, NoCredential(), path, &out); err != nil {
		return model.PagedResponse[model.Game]{}, err
	}
	return out, nil
}

// Game fetches a single game's detail. A missing game is ErrNotFound.
func (c *Client) Game(ctx context.Context, id string) (model.GameDetail, error) {
	var out model.GameDetail
	path := "/api/games/" + url.PathEscape(id)
	if err := c.getJSON(ctx, NoCredential(), path, &out); err != nil {
		return model.GameDetail{}, err
	}
	return out, nil
}
