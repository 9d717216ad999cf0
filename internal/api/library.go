package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gauthier-se/Checkpoint/internal/model"
)

// librarySize is the page size for the personal library listing. The library
// is fetched in one page and filtered client-side.
const librarySize = 100

// Library fetches the current user's game library.
func (c *Client) Library(ctx context.Context, cred Credential) (model.PagedResponse[model.UserGame], error) {
	var out model.PagedResponse[model.UserGame]
	path := fmt.Sprintf("/api/me/library?page=0&size=%d", librarySize)
	if err := c.getJSON(ctx, cred, path, &out); err != nil {
		return model.PagedResponse[model.UserGame]{}, err
	}
	return out, nil
}

// UpdateLibraryEntry sets the status of one library entry.
func (c *Client) UpdateLibraryEntry(ctx context.Context, cred Credential, gameID string, status model.GameStatus) error {
	path := "/api/me/library/" + url.PathEscape(gameID)
	body := model.UserGameRequest{VideoGameID: gameID, Status: status}
	resp, err := c.do(ctx, cred, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode)
	}
	return nil
}

// RemoveLibraryEntry deletes one library entry.
func (c *Client) RemoveLibraryEntry(ctx context.Context, cred Credential, gameID string) error {
	path := "/api/me/library/" + url.PathEscape(gameID)
	resp, err := c.do(ctx, cred, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode)
	}
	return nil
}
