package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	gh "github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

func NewRepo(urlStr string) (*Repo, error) {
	pattern := regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:/.*)?$`)
	matches := pattern.FindStringSubmatch(urlStr)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid GitHub repo URL: %q", urlStr)
	}
	repo := &Repo{
		Owner: matches[1],
		Repo:  matches[2],
	}
	return repo, nil
}

type Repo struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Content is a file or a directory at a ref of a repository.
type Content struct {
	Repo
	Ref  string `json:"ref"`
	Path string `json:"path"`
}

var contentPattern = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+)/(?:tree|blob)/([^/]+)/(.+?)/?$`)

// NewContent parses "https://github.com/<OWNER>/<REPO>/(tree|blob)/<REF>/<PATH>".
// REF must not contain a slash.
func NewContent(urlStr string) (*Content, error) {
	matches := contentPattern.FindStringSubmatch(urlStr)
	if len(matches) != 5 {
		return nil, fmt.Errorf("invalid GitHub content URL: %q", urlStr)
	}
	p, err := url.PathUnescape(matches[4])
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub content URL: %q: %w", urlStr, err)
	}
	c := &Content{
		Repo: Repo{
			Owner: matches[1],
			Repo:  matches[2],
		},
		Ref:  matches[3],
		Path: p,
	}
	return c, nil
}

// ContentsClient checks the existence of repository contents with the GitHub API.
type ContentsClient struct {
	client *gh.Client
}

// NewContentsClient creates a client. An empty token makes unauthenticated requests.
// baseURL overrides the API endpoint when non-empty (e.g., GitHub Enterprise); it must end with a slash.
func NewContentsClient(ctx context.Context, httpClient *http.Client, token, baseURL string) (*ContentsClient, error) {
	if token != "" {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client := gh.NewClient(httpClient)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}
	return &ContentsClient{client: client}, nil
}

// Exists reports whether the content exists.
// A 404 is not an error.
func (c *ContentsClient) Exists(ctx context.Context, content *Content) (bool, error) {
	opt := &gh.RepositoryContentGetOptions{Ref: content.Ref}
	_, _, resp, err := c.client.Repositories.GetContents(ctx, content.Owner, content.Repo.Repo, content.Path, opt)
	if err != nil {
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return false, nil
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
