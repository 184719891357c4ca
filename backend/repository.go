package backend

import (
	"context"

	"github.com/KyahWill/osci"
)

// ValidateRepository asks the backend whether url names a reachable
// repository. A refusal is returned as *osci.BackendError carrying the
// backend's message.
func (c *Client) ValidateRepository(ctx context.Context, url string) error {
	return c.post(ctx, c.timeout, "validate-github-url", validateURLPath, urlRequest{URL: url}, nil)
}

// GatherFiles retrieves the flat file list of the repository at url.
func (c *Client) GatherFiles(ctx context.Context, url string) (osci.Repository, error) {
	var resp gatherResponse
	if err := c.post(ctx, c.timeout, "gather-files", gatherFilesPath, urlRequest{URL: url}, &resp); err != nil {
		return osci.Repository{}, err
	}
	repo := osci.Repository{
		Name:  resp.Repository,
		Files: make([]osci.RepoFile, len(resp.Files)),
	}
	if repo.Name == "" {
		repo.Name = osci.NormalizeRepository(url)
	}
	for i, f := range resp.Files {
		repo.Files[i] = osci.RepoFile{Path: f.Path, Name: f.Name, Content: f.Content, Size: f.Size}
	}
	c.logger.Info().Str("repository", repo.Name).Int("files", len(repo.Files)).Msg("files gathered")
	return repo, nil
}
