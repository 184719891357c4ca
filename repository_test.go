package osci_test

import (
	"testing"

	"github.com/KyahWill/osci"
	"github.com/stretchr/testify/assert"
)

func TestValidateRepositoryURL(t *testing.T) {
	t.Parallel()

	valid := []string{
		"https://github.com/acme/widgets",
		"https://github.com/acme/widgets/",
		"http://github.com/acme/widgets",
		"https://www.github.com/acme-co/widgets.js",
		"https://github.com/a_b/c_d",
	}
	for _, url := range valid {
		assert.NoError(t, osci.ValidateRepositoryURL(url), url)
	}

	invalid := []string{
		"github.com/acme/widgets",
		"https://gitlab.com/acme/widgets",
		"https://github.com/acme",
		"https://github.com/acme/widgets/tree/main",
		"ftp://github.com/acme/widgets",
	}
	for _, url := range invalid {
		err := osci.ValidateRepositoryURL(url)
		assert.ErrorIs(t, err, osci.ErrInvalidRepositoryURL, url)
		assert.ErrorIs(t, err, osci.ErrValidation, url)
	}
}

func TestValidateRepositoryURL_Empty(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"", "   ", "\t"} {
		err := osci.ValidateRepositoryURL(url)
		assert.ErrorIs(t, err, osci.ErrEmptyRepositoryURL)
		assert.ErrorIs(t, err, osci.ErrValidation)
	}
}

func TestRepoFile_DisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cmd/main.go", osci.RepoFile{Path: "cmd/main.go", Name: "main.go"}.DisplayPath())
	assert.Equal(t, "main.go", osci.RepoFile{Name: "main.go"}.DisplayPath())
	assert.Equal(t, "Unknown file", osci.RepoFile{}.DisplayPath())
}

func TestRepoFile_SizeKB(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, osci.RepoFile{Size: 2048}.SizeKB(), 1e-9)
	assert.InDelta(t, 0.0, osci.RepoFile{}.SizeKB(), 1e-9)
}
