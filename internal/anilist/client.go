// Package anilist wraps the AniList GraphQL API for fetching the user data the
// cards are rendered from.
package anilist

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/machinebox/graphql"

	"github.com/RLAlpha49/AniCards-sub005/internal/log"
)

// DefaultEndpoint is the public AniList GraphQL endpoint
const DefaultEndpoint = "https://graphql.anilist.co"

// Client is the generic AniList client for making queries to the AniList graphql API
type Client struct {
	client *graphql.Client
}

// NewClient creates a client against the given endpoint (DefaultEndpoint when empty)
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{client: graphql.NewClient(endpoint)}
}

// Query runs a GraphQL query with variables, decoding into result
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	req := graphql.NewRequest(query)
	for key, value := range variables {
		req.Var(key, value)
	}
	if err := c.client.Run(ctx, req, result); err != nil {
		return classifyError(err)
	}
	return nil
}

// NetworkError marks transport-level failures so callers can distinguish them
// from API-level errors.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

func classifyError(err error) error {
	var netErr *url.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary() ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host") ||
		strings.Contains(err.Error(), "i/o timeout")) {
		return NetworkError{Err: err}
	}
	return err
}

// UserIDByName resolves an AniList user id from a username.  A zero id from the
// API means the user does not exist.
func (c *Client) UserIDByName(ctx context.Context, name string) (int64, error) {
	query := `
        query ($userName: String) {
            User(name: $userName) {
                id
            }
        }
    `

	var response struct {
		User struct {
			ID int64
		}
	}

	if err := c.Query(ctx, query, map[string]interface{}{"userName": name}, &response); err != nil {
		return 0, fmt.Errorf("failed to resolve user id for %q: %w", name, err)
	}
	if response.User.ID == 0 {
		return 0, fmt.Errorf("no AniList user named %q", name)
	}

	log.Debug("Resolved AniList user id", "username", name, "id", response.User.ID)
	return response.User.ID, nil
}
