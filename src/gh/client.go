package gh

import (
	"context"
	"net/http"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// Client wraps the pieces of the GitHub API the CI helpers use.
type Client struct {
	gh *github.Client
}

// New returns a Client authenticated with the given token, anonymous
// when the token is empty.
func New(ctx context.Context, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return &Client{gh: github.NewClient(hc)}
}

// NewFromGitHub wraps an existing go-github client. Tests use it with
// a client pointed at a local server.
func NewFromGitHub(gh *github.Client) *Client {
	return &Client{gh: gh}
}
