package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfmerge/pkg/filelist"
	"pdfmerge/pkg/merge"
	"pdfmerge/pkg/settings"
)

type recordingMerger struct {
	requests []merge.Request
	err      error
}

func (r *recordingMerger) Merge(req merge.Request) (merge.Result, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return merge.Result{}, r.err
	}
	if err := merge.Validate(req); err != nil {
		return merge.Result{}, err
	}
	return merge.Result{OutputPath: filepath.Join(req.OutputFolder, req.OutputName), InputCount: len(req.Files)}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(*Model)
	require.True(t, ok, "expected Update to return *Model")
	require.Same(t, m, nm)
	return cmd
}

func newModel(files ...string) (*Model, *recordingMerger) {
	list := filelist.New(nil)
	list.Add(files...)
	merger := &recordingMerger{}
	m := New(Config{
		List:   list,
		Paths:  settings.LastUsedPaths{settings.KeyOutputPath: "/tmp/out"},
		Merger: merger,
	})
	return m, merger
}

func TestNew_PrefillsFromSettings(t *testing.T) {
	m, _ := newModel()
	assert.Equal(t, "/tmp/out", m.OutputFolder)
	assert.Equal(t, "merged.pdf", m.OutputName)
}

func TestCursorNavigation(t *testing.T) {
	m, _ := newModel("a.pdf", "b.pdf", "c.pdf")

	press(t, m, runes("j"))
	press(t, m, runes("j"))
	press(t, m, runes("j"))
	assert.Equal(t, 2, m.Cursor, "cursor stops at the last entry")

	press(t, m, runes("k"))
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor)
}

func TestReorderKeepsSelectionOnMovedEntry(t *testing.T) {
	m, _ := newModel("a.pdf", "b.pdf", "c.pdf")

	press(t, m, runes("J"))
	assert.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, m.Files())
	assert.Equal(t, 1, m.Cursor)

	press(t, m, runes("J"))
	press(t, m, runes("J"))
	assert.Equal(t, []string{"b.pdf", "c.pdf", "a.pdf"}, m.Files())
	assert.Equal(t, 2, m.Cursor)

	press(t, m, runes("K"))
	assert.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, m.Files())
	assert.Equal(t, 1, m.Cursor)
}

func TestRemoveClampsCursor(t *testing.T) {
	m, _ := newModel("a.pdf", "b.pdf")
	press(t, m, runes("j"))

	press(t, m, runes("x"))
	assert.Equal(t, []string{"a.pdf"}, m.Files())
	assert.Equal(t, 0, m.Cursor)

	press(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	assert.Empty(t, m.Files())
	assert.Equal(t, 0, m.Cursor)

	press(t, m, runes("x"))
	assert.Empty(t, m.Files())
}

func TestAddParsesDroppedPayload(t *testing.T) {
	m, _ := newModel("a.pdf")

	press(t, m, runes("a"))
	assert.Equal(t, modeAddFiles, m.mode)
	press(t, m, runes("'/scans/b c.pdf' /scans/d.pdf"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"a.pdf", "/scans/b c.pdf", "/scans/d.pdf"}, m.Files())
	assert.Equal(t, "/scans", m.paths[settings.KeyInitialPDFDir])
}

func TestEscCancelsInput(t *testing.T) {
	m, _ := newModel()

	press(t, m, runes("n"))
	press(t, m, runes("x"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "merged.pdf", m.OutputName)
}

func TestEditOutputFolderRecordsSetting(t *testing.T) {
	m, _ := newModel()

	press(t, m, runes("o"))
	for i := 0; i < len("/tmp/out"); i++ {
		press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(t, m, runes("/srv/merged"))
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "/srv/merged", m.OutputFolder)
	assert.Equal(t, "/srv/merged", m.paths[settings.KeyOutputPath])
}

func TestMergeSuccessSavesSettings(t *testing.T) {
	m, merger := newModel("a.pdf", "b.pdf")
	var saved settings.LastUsedPaths
	m.saveSettings = func(p settings.LastUsedPaths) error {
		saved = p
		return nil
	}

	cmd := press(t, m, runes("m"))
	require.NotNil(t, cmd)
	assert.True(t, m.Merging)

	// Edits while the merge is in flight do not reach the request.
	press(t, m, runes("x"))

	press(t, m, cmd())
	assert.False(t, m.Merging)
	require.Len(t, merger.requests, 1)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, merger.requests[0].Files)
	assert.False(t, m.StatusErr)
	assert.Contains(t, m.Status, filepath.Join("/tmp/out", "merged.pdf"))
	require.NotNil(t, saved)
	assert.Equal(t, "/tmp/out", saved[settings.KeyOutputPath])
}

func TestMergeIgnoredWhileRunning(t *testing.T) {
	m, _ := newModel("a.pdf")
	require.NotNil(t, press(t, m, runes("m")))
	assert.Nil(t, press(t, m, runes("m")))
}

func TestMergeFailureShowsKind(t *testing.T) {
	m, _ := newModel()
	saveCalled := false
	m.saveSettings = func(settings.LastUsedPaths) error {
		saveCalled = true
		return nil
	}

	cmd := press(t, m, runes("m"))
	press(t, m, cmd())

	assert.True(t, m.StatusErr)
	assert.True(t, strings.HasPrefix(m.Status, merge.KindNoInputFiles), m.Status)
	assert.False(t, saveCalled, "settings are only saved after a successful merge")
}

func TestMergeBackendFailure(t *testing.T) {
	m, merger := newModel("a.pdf")
	merger.err = &merge.BackendError{File: "a.pdf", Err: errors.New("corrupt")}

	cmd := press(t, m, runes("m"))
	press(t, m, cmd())

	assert.True(t, m.StatusErr)
	assert.Equal(t, "MergeBackendFailure: merge failed on a.pdf: corrupt", m.Status)
}

func TestPageCountsRendered(t *testing.T) {
	list := filelist.New(nil)
	list.Add("a.pdf", "bad.pdf")
	m := New(Config{
		List:   list,
		Merger: &recordingMerger{},
		PageCounter: func(path string) (int, error) {
			if path == "bad.pdf" {
				return 0, errors.New("broken")
			}
			return 4, nil
		},
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	press(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "(4 pages)")
	assert.Contains(t, view, "(unreadable)")
}

func TestLongPathsFitWindow(t *testing.T) {
	long := "/home/user/documents/archive/2026/quarterly/reports/q3-summary.pdf"
	m, _ := newModel(long)

	assert.Contains(t, m.View(), long)

	press(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	view := m.View()
	assert.NotContains(t, view, long)
	assert.Contains(t, view, "…")
	assert.Contains(t, view, "reports/q3-summary.pdf")
}

func TestFitPath(t *testing.T) {
	assert.Equal(t, "short.pdf", fitPath("short.pdf", 20))
	assert.Equal(t, "abcdefghijklmnop.pdf", fitPath("abcdefghijklmnop.pdf", 0))
	assert.Equal(t, "…lmnop.pdf", fitPath("abcdefghijklmnop.pdf", 10))
}

func TestQuit(t *testing.T) {
	m, _ := newModel()
	cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
