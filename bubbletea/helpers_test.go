package bubbletea_test

import (
	"context"
	"testing"

	"github.com/KyahWill/osci"
	bt "github.com/KyahWill/osci/bubbletea"
	"github.com/KyahWill/osci/mock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

const repoURL = "https://github.com/foo/bar"

var sampleFiles = []osci.RepoFile{
	{Path: "cmd/app/main.go", Content: "package main\n", Size: 1536},
	{Path: "README.md", Content: "# bar\n", Size: 0},
	{Name: "internal/server.go", Content: "package internal\n", Size: 2048},
}

// newModel creates a sized model.
func newModel(t *testing.T, svc bt.Services, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(svc, osci.DefaultTheme(), opts...)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

// update sends msg and returns the updated Model.
func update(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	m, _ = updateCmd(t, m, msg)
	return m
}

func updateCmd(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// exec runs a domain command and feeds its message back into the model.
func exec(t *testing.T, m bt.Model, cmd tea.Cmd) bt.Model {
	t.Helper()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// okRepos validates every URL and gathers sampleFiles.
func okRepos() *mock.RepositoryService {
	return &mock.RepositoryService{
		ValidateRepositoryFn: func(_ context.Context, _ string) error { return nil },
		GatherFilesFn: func(_ context.Context, _ string) (osci.Repository, error) {
			return osci.Repository{Name: "foo/bar", Files: sampleFiles}, nil
		},
	}
}

// gatheredModel returns a model that has validated repoURL and gathered
// sampleFiles.
func gatheredModel(t *testing.T, svc bt.Services, opts ...bt.Option) bt.Model {
	t.Helper()
	if svc.Repositories == nil {
		svc.Repositories = okRepos()
	}
	m := newModel(t, svc, append([]bt.Option{bt.WithRepositoryURL(repoURL)}, opts...)...)
	m, cmd := updateCmd(t, m, key(tea.KeyEnter))
	m = exec(t, m, cmd)
	m, cmd = updateCmd(t, m, key(tea.KeyCtrlG))
	m = exec(t, m, cmd)
	require.Len(t, m.Files(), len(sampleFiles))
	return m
}

func runewidthOf(s string) int {
	return runewidth.StringWidth(s)
}
