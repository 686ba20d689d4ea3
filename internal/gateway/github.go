// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// MergedPR is a merged pull request as returned by the search API,
// together with the repository details needed for rendering.
type MergedPR struct {
	Repo     string
	Number   int
	Title    string
	URL      string
	MergedAt time.Time
	Stars    int
	Language string
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchOwnedRepos returns the full names of every repository the user owns or is a member of.
	FetchOwnedRepos(ctx context.Context, user string) (map[string]bool, error)
	// FetchSourceRepos returns the full names of the user's own non-fork repositories.
	FetchSourceRepos(ctx context.Context, user string) ([]string, error)
	FetchLanguages(ctx context.Context, fullName string) (map[string]int, error)
	SearchMergedPRs(ctx context.Context, user string, limit int) ([]MergedPR, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// mergedPRQuery searches merged pull requests and pulls the repository metadata in the same round trip.
type mergedPRQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Number     int
					Title      string
					URL        string
					MergedAt   githubv4.DateTime
					Repository struct {
						NameWithOwner   string
						StargazerCount  int
						PrimaryLanguage struct {
							Name string
						}
					}
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchOwnedRepos(ctx context.Context, user string) (map[string]bool, error) {
	g.logger.Printf("Fetching repos for %s...\n", user)
	opts := &github.RepositoryListByUserOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos, err := g.listUserRepos(ctx, user, opts)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(repos))
	for _, repo := range repos {
		owned[repo.GetFullName()] = true
	}
	g.logger.Printf("  %d owned/member repos\n", len(owned))
	return owned, nil
}

func (g *GitHubGateway) FetchSourceRepos(ctx context.Context, user string) ([]string, error) {
	g.logger.Println("Fetching source repos for language stats...")
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos, err := g.listUserRepos(ctx, user, opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		if repo.GetFork() {
			continue
		}
		names = append(names, repo.GetFullName())
	}
	return names, nil
}

func (g *GitHubGateway) listUserRepos(ctx context.Context, user string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error) {
	var all []*github.Repository
	for {
		repos, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	return all, nil
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, fullName string) (map[string]int, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository name %q", fullName)
	}
	langs, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages for %s: %w", fullName, err)
	}
	return langs, nil
}

// SearchMergedPRs pages through the user's merged pull requests, most recently updated first,
// stopping once at least limit items were collected.
func (g *GitHubGateway) SearchMergedPRs(ctx context.Context, user string, limit int) ([]MergedPR, error) {
	g.logger.Println("Searching merged PRs...")
	query := fmt.Sprintf("type:pr author:%s is:merged sort:updated-desc", user)
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	var prs []MergedPR
	for len(prs) < limit {
		var q mergedPRQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for merged PRs: %w", err)
		}
		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "PullRequest" {
				continue
			}
			pr := edge.Node.PullRequest
			prs = append(prs, MergedPR{
				Repo:     pr.Repository.NameWithOwner,
				Number:   pr.Number,
				Title:    pr.Title,
				URL:      pr.URL,
				MergedAt: pr.MergedAt.Time,
				Stars:    pr.Repository.StargazerCount,
				Language: pr.Repository.PrimaryLanguage.Name,
			})
		}
		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of merged PRs...")
	}
	g.logger.Printf("  %d total merged PRs\n", len(prs))
	return prs, nil
}
