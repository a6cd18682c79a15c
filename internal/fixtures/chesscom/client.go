// Package chesscom fetches real PGN text from the Chess.com public API for
// use as test fixtures elsewhere in this module. Adapted from
// kyleboon-gochess/internal/chesscom/{client.go,models.go}; trimmed to
// archive listing and PGN download (the teacher's game-filtering CLI
// command has no role in a fixture generator and is dropped).
package chesscom

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const baseURL = "https://api.chess.com/pub"

// Client is a minimal Chess.com public API client.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with a bounded request timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// ArchivesResponse is the archives endpoint's response shape.
type ArchivesResponse struct {
	Archives []string `json:"archives"`
}

// GetArchivedMonths lists the monthly archive URLs available for username.
func (c *Client) GetArchivedMonths(username string) (*ArchivesResponse, error) {
	url := fmt.Sprintf("%s/player/%s/games/archives", baseURL, username)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching archives: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chess.com API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archives response: %w", err)
	}

	var archives ArchivesResponse
	if err := json.Unmarshal(body, &archives); err != nil {
		return nil, fmt.Errorf("unmarshaling archives response: %w", err)
	}
	return &archives, nil
}

// GetPlayerGamesPGN downloads the concatenated PGN text for every game
// username played in the given year/month, in the multi-game-stream shape
// internal/pgn.Scanner expects.
func (c *Client) GetPlayerGamesPGN(username string, year, month int) (string, error) {
	url := fmt.Sprintf("%s/player/%s/games/%d/%02d/pgn", baseURL, username, year, month)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching PGN: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chess.com API returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading PGN response: %w", err)
	}
	return string(body), nil
}
