// Package githubapi implements the domain.GitHubGateway over the GitHub
// REST API. It is the data-source layer of the service; no pagination,
// retry or rate-limit policy leaks into the usecases above it.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/pkg/apperror"
	"go-oscrec-backend/pkg/logger"
)

const (
	acceptHeader = "application/vnd.github.v3+json"
	// maxUserRepos caps repository listing to keep profiling within one
	// rate-limit budget.
	maxUserRepos = 100
	reposPerPage = 100
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a gateway against baseURL. The token is optional;
// without it the unauthenticated API limits apply.
func NewClient(baseURL, token string) domain.GitHubGateway {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// get performs one API request and decodes the JSON body into out.
// It returns the HTTP status code so callers can branch on 404.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) (int, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("github: %s returned status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("github: decoding %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	status, err := c.get(ctx, "/users/"+url.PathEscape(username), nil, &user)
	if status == http.StatusNotFound {
		return nil, apperror.UserNotFound(fmt.Sprintf("GitHub user '%s' not found", username))
	}
	if err != nil {
		return nil, apperror.Upstream("Failed to fetch user", err)
	}
	return &user, nil
}

func (c *Client) GetUserRepos(ctx context.Context, username string) ([]domain.Repository, error) {
	var all []domain.Repository
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("per_page", fmt.Sprint(reposPerPage))
		params.Set("page", fmt.Sprint(page))
		params.Set("sort", "updated")

		var repos []domain.Repository
		if _, err := c.get(ctx, "/users/"+url.PathEscape(username)+"/repos", params, &repos); err != nil {
			return nil, apperror.Upstream("Failed to fetch user repositories", err)
		}
		if len(repos) == 0 {
			break
		}
		all = append(all, repos...)
		if len(all) >= maxUserRepos {
			all = all[:maxUserRepos]
			break
		}
	}
	logger.Log.Info("Fetched user repositories", "username", username, "count", len(all))
	return all, nil
}

// GetUserEvents is best-effort: failures degrade to an empty list so the
// profiling path can continue on language and description signals alone.
func (c *Client) GetUserEvents(ctx context.Context, username string) ([]domain.Event, error) {
	params := url.Values{}
	params.Set("per_page", "100")

	var events []domain.Event
	if _, err := c.get(ctx, "/users/"+url.PathEscape(username)+"/events", params, &events); err != nil {
		logger.Log.Warn("Failed to fetch user events", "username", username, "error", err)
		return nil, nil
	}
	return events, nil
}

func (c *Client) SearchRepositories(ctx context.Context, query, sort, order string, perPage int) ([]domain.Repository, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", order)
	params.Set("per_page", fmt.Sprint(perPage))

	var result struct {
		TotalCount int                 `json:"total_count"`
		Items      []domain.Repository `json:"items"`
	}
	if _, err := c.get(ctx, "/search/repositories", params, &result); err != nil {
		return nil, apperror.Upstream("Repository search failed", err)
	}
	logger.Log.Info("Repository search", "query", query, "total", result.TotalCount, "returned", len(result.Items))
	return result.Items, nil
}

func (c *Client) SearchIssues(ctx context.Context, query, sort, order string, perPage int) ([]domain.Issue, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", order)
	params.Set("per_page", fmt.Sprint(perPage))

	var result struct {
		TotalCount int            `json:"total_count"`
		Items      []domain.Issue `json:"items"`
	}
	if _, err := c.get(ctx, "/search/issues", params, &result); err != nil {
		return nil, apperror.Upstream("Issue search failed", err)
	}
	return result.Items, nil
}

// GetRepoLanguages is best-effort: an empty map is returned on failure.
func (c *Client) GetRepoLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	languages := map[string]int64{}
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(repo))
	if _, err := c.get(ctx, path, nil, &languages); err != nil {
		logger.Log.Warn("Failed to fetch repo languages", "owner", owner, "repo", repo, "error", err)
		return map[string]int64{}, nil
	}
	return languages, nil
}

func (c *Client) GetRepoTree(ctx context.Context, owner, repo, branch string) ([]domain.TreeEntry, error) {
	repoPath := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))

	if branch == "" {
		var info struct {
			DefaultBranch string `json:"default_branch"`
		}
		status, err := c.get(ctx, repoPath, nil, &info)
		if status == http.StatusNotFound {
			return nil, apperror.NotFound(fmt.Sprintf("Repository %s/%s not found", owner, repo))
		}
		if err != nil {
			return nil, apperror.Upstream("Failed to fetch repository info", err)
		}
		branch = info.DefaultBranch
		if branch == "" {
			branch = "main"
		}
	}

	sha, err := c.resolveBranchSHA(ctx, repoPath, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("recursive", "1")
	var tree struct {
		Tree []domain.TreeEntry `json:"tree"`
	}
	if _, err := c.get(ctx, repoPath+"/git/trees/"+sha, params, &tree); err != nil {
		return nil, apperror.Upstream("Failed to fetch repository tree", err)
	}

	files := make([]domain.TreeEntry, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		if entry.Type == "blob" {
			files = append(files, entry)
		}
	}
	logger.Log.Info("Fetched repository tree", "owner", owner, "repo", repo, "branch", branch, "files", len(files))
	return files, nil
}

// resolveBranchSHA resolves the commit SHA for a branch, trying common
// alternatives when the requested branch does not exist.
func (c *Client) resolveBranchSHA(ctx context.Context, repoPath, owner, repo, branch string) (string, error) {
	type branchInfo struct {
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}

	tryBranch := func(name string) (string, int, error) {
		var info branchInfo
		status, err := c.get(ctx, repoPath+"/branches/"+url.PathEscape(name), nil, &info)
		return info.Commit.SHA, status, err
	}

	sha, status, err := tryBranch(branch)
	if err == nil {
		return sha, nil
	}
	if status != http.StatusNotFound {
		return "", apperror.Upstream("Failed to resolve branch", err)
	}

	logger.Log.Warn("Branch not found, trying alternatives", "owner", owner, "repo", repo, "branch", branch)
	for _, alt := range []string{"master", "main", "develop"} {
		if alt == branch {
			continue
		}
		if sha, _, altErr := tryBranch(alt); altErr == nil {
			return sha, nil
		}
	}
	return "", apperror.Upstream(fmt.Sprintf("No accessible branch found for %s/%s", owner, repo), err)
}
