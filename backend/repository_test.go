package backend_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/KyahWill/osci"
	"github.com/KyahWill/osci/backend"
	"github.com/KyahWill/osci/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ValidateRepository(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		b := &mock.Backend{
			ValidateURLFn: func(req map[string]any) (int, any) {
				assert.Equal(t, "https://github.com/acme/widgets", req["url"])
				return http.StatusOK, map[string]any{"message": "Valid GitHub URL", "valid": true}
			},
		}
		c := newClient(t, b)
		assert.NoError(t, c.ValidateRepository(context.Background(), "https://github.com/acme/widgets"))
	})

	t.Run("backend message is surfaced", func(t *testing.T) {
		t.Parallel()
		b := &mock.Backend{
			ValidateURLFn: func(map[string]any) (int, any) {
				return http.StatusNotFound, map[string]any{
					"error": "GitHub URL does not exist or is not accessible",
					"valid": false,
				}
			},
		}
		c := newClient(t, b)
		err := c.ValidateRepository(context.Background(), "https://github.com/acme/nope")
		require.Error(t, err)
		assert.Equal(t, "GitHub URL does not exist or is not accessible", osci.BackendMessage(err, "fallback"))
	})

	t.Run("transport failure is not a backend error", func(t *testing.T) {
		t.Parallel()
		c := backend.New(backend.WithBaseURL(closedURL(t)))
		err := c.ValidateRepository(context.Background(), "https://github.com/acme/widgets")
		require.Error(t, err)
		var be *osci.BackendError
		assert.NotErrorAs(t, err, &be)
	})
}

func TestClient_GatherFiles(t *testing.T) {
	t.Parallel()

	t.Run("maps file records", func(t *testing.T) {
		t.Parallel()
		b := &mock.Backend{
			GatherFilesFn: func(req map[string]any) (int, any) {
				assert.Equal(t, "https://github.com/acme/widgets", req["url"])
				return http.StatusOK, map[string]any{
					"repository": "acme/widgets",
					"files": []map[string]any{
						{"path": "README.md", "content": "# Widgets", "size": 9},
						{"name": "LICENSE"},
					},
					"total_files": 2,
				}
			},
		}
		c := newClient(t, b)
		repo, err := c.GatherFiles(context.Background(), "https://github.com/acme/widgets")
		require.NoError(t, err)
		assert.Equal(t, "acme/widgets", repo.Name)
		require.Len(t, repo.Files, 2)
		assert.Equal(t, osci.RepoFile{Path: "README.md", Content: "# Widgets", Size: 9}, repo.Files[0])
		assert.Equal(t, "LICENSE", repo.Files[1].DisplayPath())
	})

	t.Run("missing repository name is derived from url", func(t *testing.T) {
		t.Parallel()
		b := &mock.Backend{
			GatherFilesFn: func(map[string]any) (int, any) {
				return http.StatusOK, map[string]any{"files": []any{}}
			},
		}
		c := newClient(t, b)
		repo, err := c.GatherFiles(context.Background(), "https://github.com/acme/widgets/")
		require.NoError(t, err)
		assert.Equal(t, "acme/widgets", repo.Name)
		assert.Empty(t, repo.Files)
	})

	t.Run("backend error", func(t *testing.T) {
		t.Parallel()
		b := &mock.Backend{
			GatherFilesFn: func(map[string]any) (int, any) {
				return http.StatusNotFound, map[string]any{"error": "Repository not found or inaccessible"}
			},
		}
		c := newClient(t, b)
		_, err := c.GatherFiles(context.Background(), "https://github.com/acme/widgets")
		var be *osci.BackendError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, http.StatusNotFound, be.StatusCode)
		assert.Equal(t, "gather-files", be.Op)
	})
}
