package domain

import (
	"context"
	"time"
)

// User is the subset of a GitHub account we profile.
type User struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	HTMLURL     string `json:"html_url"`
	CreatedAt   string `json:"created_at"`
}

// Event is a public activity event; only push events carry commit messages.
type Event struct {
	Type    string `json:"type"`
	Payload struct {
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
	} `json:"payload"`
}

const EventTypePush = "PushEvent"

// TreeEntry is one object of a recursive git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
	URL  string `json:"url"`
}

// GitHubGateway is the external data-fetch collaborator. Timestamps stay as
// raw strings; scoring decides how to degrade when they do not parse.
// GetUserEvents and GetRepoLanguages are best-effort: implementations return
// empty results instead of errors when the fetch fails.
type GitHubGateway interface {
	GetUser(ctx context.Context, username string) (*User, error)
	GetUserRepos(ctx context.Context, username string) ([]Repository, error)
	GetUserEvents(ctx context.Context, username string) ([]Event, error)
	SearchRepositories(ctx context.Context, query, sort, order string, perPage int) ([]Repository, error)
	SearchIssues(ctx context.Context, query, sort, order string, perPage int) ([]Issue, error)
	GetRepoLanguages(ctx context.Context, owner, repo string) (map[string]int64, error)
	GetRepoTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error)
}

// Cache is the injected TTL cache capability. Entries are timestamped at
// Set; freshness is judged against the TTL supplied at Get, so different
// call sites can apply different windows to the same key space.
type Cache interface {
	Get(ctx context.Context, key string, ttl time.Duration) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
