// Package tui is the interactive front end: a reorderable list of documents
// with output settings and a merge action.
//
// Key presses become intents on the file list and merge orchestrator; the
// model only renders their results.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pdfmerge/pkg/droppaths"
	"pdfmerge/pkg/filelist"
	"pdfmerge/pkg/inspect"
	"pdfmerge/pkg/merge"
	"pdfmerge/pkg/settings"
)

// Key constants for navigation.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyUp       = "up"
	keyDown     = "down"
	keyShiftUp  = "shift+up"
	keyShiftDn  = "shift+down"
	keyDelete   = "delete"
	keyCtrlC    = "ctrl+c"
	defaultName = "merged.pdf"
)

type mode int

const (
	modeList mode = iota
	modeAddFiles
	modeOutputFolder
	modeOutputName
)

// Merger runs a merge request. *merge.Orchestrator satisfies it.
type Merger interface {
	Merge(req merge.Request) (merge.Result, error)
}

// Config wires a Model to its collaborators.
type Config struct {
	List         *filelist.Controller   // Queued documents; created when nil.
	Paths        settings.LastUsedPaths // Last used folders; created when nil.
	Merger       Merger                 // Required.
	SaveSettings func(settings.LastUsedPaths) error
	PageCounter  inspect.PageCounter // Page counts are not shown when nil.
	OutputName   string              // Initial output file name.
	Logger       *zap.Logger
}

// mergeDoneMsg carries the outcome of a merge run in the background.
type mergeDoneMsg struct {
	folder string
	result merge.Result
	err    error
}

// pageCountsMsg carries page counts for a batch of added files.
type pageCountsMsg struct {
	infos []inspect.PageInfo
}

// Model is the Bubble Tea model of the merge screen.
type Model struct {
	list         *filelist.Controller
	paths        settings.LastUsedPaths
	merger       Merger
	saveSettings func(settings.LastUsedPaths) error
	counter      inspect.PageCounter
	logger       *zap.Logger

	Cursor       int
	OutputFolder string
	OutputName   string
	Status       string
	StatusErr    bool
	Merging      bool

	mode  mode
	input textinput.Model
	pages map[string]int // Page count per path, -1 when unreadable.
	width int
}

// New builds a Model. The output folder is prefilled from the last used
// output_path setting.
func New(cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.List == nil {
		cfg.List = filelist.New(cfg.Logger)
	}
	if cfg.Paths == nil {
		cfg.Paths = settings.LastUsedPaths{}
	}
	if cfg.OutputName == "" {
		cfg.OutputName = defaultName
	}

	ti := textinput.New()
	ti.CharLimit = 0

	return &Model{
		list:         cfg.List,
		paths:        cfg.Paths,
		merger:       cfg.Merger,
		saveSettings: cfg.SaveSettings,
		counter:      cfg.PageCounter,
		logger:       cfg.Logger,
		OutputFolder: cfg.Paths.Get(settings.KeyOutputPath, ""),
		OutputName:   cfg.OutputName,
		input:        ti,
		pages:        map[string]int{},
	}
}

// Files returns the current ordering.
func (m *Model) Files() []string {
	return m.list.Snapshot()
}

// Init counts pages of files queued before the program started.
func (m *Model) Init() tea.Cmd {
	return m.countPages(m.list.Snapshot())
}

// Update handles a message and returns the updated model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 20)
		return m, nil
	case mergeDoneMsg:
		return m, m.handleMergeDone(msg)
	case pageCountsMsg:
		for _, info := range msg.infos {
			if info.Err != nil {
				m.pages[info.Path] = -1
				continue
			}
			m.pages[info.Path] = info.Pages
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return m, tea.Quit
		}
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case keyUp, "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case keyDown, "j":
		if m.Cursor < m.list.Len()-1 {
			m.Cursor++
		}
	case keyShiftUp, "K":
		m.Cursor = m.list.MoveUp(m.Cursor)
	case keyShiftDn, "J":
		m.Cursor = m.list.MoveDown(m.Cursor)
	case keyDelete, "x":
		m.list.RemoveAt(m.Cursor)
		if m.Cursor >= m.list.Len() && m.Cursor > 0 {
			m.Cursor = m.list.Len() - 1
		}
	case "a":
		m.startInput(modeAddFiles, "", "paste or drop PDF paths")
		m.input.Prompt = "Add: "
	case "o":
		m.startInput(modeOutputFolder, m.OutputFolder, "output folder")
		m.input.Prompt = "Output folder: "
	case "n":
		m.startInput(modeOutputName, m.OutputName, defaultName)
		m.input.Prompt = "Merged PDF name: "
	case "m":
		return m, m.startMerge()
	}
	return m, nil
}

func (m *Model) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.endInput()
		return m, nil
	case keyEnter:
		value := m.input.Value()
		md := m.mode
		m.endInput()
		return m, m.applyInput(md, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) applyInput(md mode, value string) tea.Cmd {
	switch md {
	case modeAddFiles:
		added := droppaths.Split(value)
		if len(added) == 0 {
			return nil
		}
		m.list.Add(added...)
		m.paths.Set(settings.KeyInitialPDFDir, filepath.Dir(added[0]))
		m.setStatus(fmt.Sprintf("Added %d file(s)", len(added)), false)
		return m.countPages(added)
	case modeOutputFolder:
		m.OutputFolder = value
		if value != "" {
			m.paths.Set(settings.KeyOutputPath, value)
		}
	case modeOutputName:
		m.OutputName = value
	}
	return nil
}

func (m *Model) startMerge() tea.Cmd {
	if m.Merging || m.merger == nil {
		return nil
	}
	req := merge.NewRequest(m.list, m.OutputFolder, m.OutputName)
	m.Merging = true
	m.setStatus(fmt.Sprintf("Merging %d file(s)...", len(req.Files)), false)

	merger := m.merger
	return func() tea.Msg {
		res, err := merger.Merge(req)
		return mergeDoneMsg{folder: req.OutputFolder, result: res, err: err}
	}
}

func (m *Model) handleMergeDone(msg mergeDoneMsg) tea.Cmd {
	m.Merging = false
	if msg.err != nil {
		kind := merge.Kind(msg.err)
		if kind == "" {
			kind = "Error"
		}
		m.setStatus(fmt.Sprintf("%s: %v", kind, msg.err), true)
		return nil
	}

	m.setStatus(fmt.Sprintf("PDF files merged successfully into %s", msg.result.OutputPath), false)
	m.paths.Set(settings.KeyOutputPath, msg.folder)
	if m.saveSettings != nil {
		if err := m.saveSettings(m.paths); err != nil {
			m.logger.Warn("Failed to save last used paths", zap.Error(err))
			m.setStatus(fmt.Sprintf("Merged into %s, but saving settings failed: %v", msg.result.OutputPath, err), true)
		}
	}
	return nil
}

func (m *Model) countPages(paths []string) tea.Cmd {
	if m.counter == nil || len(paths) == 0 {
		return nil
	}
	counter, logger := m.counter, m.logger
	return func() tea.Msg {
		return pageCountsMsg{infos: inspect.PageCounts(paths, 0, counter, logger)}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.Status = text
	m.StatusErr = isErr
}
