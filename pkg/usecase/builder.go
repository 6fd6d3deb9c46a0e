package usecase

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/types"
	githubinfra "github.com/neziw/releasecheck/pkg/infra/github"
)

// Builder collects the parameters of a Checker. Every With method returns a
// modified copy, so a partially configured Builder can be shared as a template.
type Builder struct {
	owner      string
	repo       string
	token      string
	baseURL    string
	httpClient *http.Client
	client     interfaces.GitHubClient
}

// NewBuilder returns an empty Builder
func NewBuilder() Builder {
	return Builder{}
}

// WithOwner sets the repository owner (user or organization)
func (b Builder) WithOwner(owner string) Builder {
	b.owner = owner
	return b
}

// WithRepository sets the repository name
func (b Builder) WithRepository(repo string) Builder {
	b.repo = repo
	return b
}

// WithToken sets a bearer token. An empty token means anonymous requests.
func (b Builder) WithToken(token string) Builder {
	b.token = token
	return b
}

// WithBaseURL sets the GitHub API origin
func (b Builder) WithBaseURL(baseURL string) Builder {
	b.baseURL = baseURL
	return b
}

// WithHTTPClient sets the HTTP client used for API requests
func (b Builder) WithHTTPClient(httpClient *http.Client) Builder {
	b.httpClient = httpClient
	return b
}

// WithClient replaces the GitHub transport entirely. Token, base URL and HTTP client are ignored.
func (b Builder) WithClient(client interfaces.GitHubClient) Builder {
	b.client = client
	return b
}

// Build creates a Checker. Owner and repository name are required, and a base URL must be absolute.
func (b Builder) Build() (*Checker, error) {
	owner := strings.TrimSpace(b.owner)
	repo := strings.TrimSpace(b.repo)

	if owner == "" {
		return nil, goerr.New("repository owner is required", goerr.T(types.ErrTagConfig))
	}
	if repo == "" {
		return nil, goerr.New("repository name is required",
			goerr.T(types.ErrTagConfig),
			goerr.V("owner", owner))
	}

	client := b.client
	if client == nil {
		var opts []githubinfra.Option
		if b.token != "" {
			opts = append(opts, githubinfra.WithToken(b.token))
		}
		if b.baseURL != "" {
			opts = append(opts, githubinfra.WithBaseURL(b.baseURL))
		}
		if b.httpClient != nil {
			opts = append(opts, githubinfra.WithHTTPClient(b.httpClient))
		}

		var err error
		client, err = githubinfra.NewClient(opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub client",
				goerr.V("owner", owner),
				goerr.V("repo", repo))
		}
	}

	return &Checker{
		owner:  owner,
		repo:   repo,
		client: client,
	}, nil
}
