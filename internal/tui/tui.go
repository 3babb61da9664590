// Package tui provides a Bubble Tea terminal user interface for birdsound-dl.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/birdsound-dl/internal/config"
	"github.com/handiism/birdsound-dl/internal/download"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6BCB77")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	taxonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// maxTaxaShown caps the taxon list while downloading.
const maxTaxaShown = 8

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// eventBuffer collects progress events from download goroutines until the
// next tick drains them.
type eventBuffer struct {
	mu     sync.Mutex
	events []download.ProgressEvent
}

func (b *eventBuffer) push(e download.ProgressEvent) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *eventBuffer) drain() []download.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	pending   *eventBuffer
	taxa      []string
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Download manager reference
	manager *download.Manager

	// Download progress
	totalFiles     int32
	processedFiles int32
	failedFiles    int32
	totalBytes     int64
	receivedBytes  int64

	// Options
	tag      bool
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model starting from settings.
// A nil settings uses config.DefaultSettings().
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "occurrence.txt"
	ti.SetValue(settings.DatasetPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		pending:   &eventBuffer{},
		ctx:       ctx,
		cancel:    cancel,
		tag:       settings.TagAudio,
		playlist:  settings.CreatePlaylist,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when download progress updates.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when initialization completes.
	InitDoneMsg struct {
		Taxa    []string
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Received int64
		Total    int64
		Files    int32
		TotalF   int32
		Failed   int32
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeDownload(), m.spinner.Tick, m.tickProgress())
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.tag = !m.tag
			}
			return m, nil

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}
			return m, nil

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for new run
				m.state = StateInput
				m.logs = nil
				m.pending = &eventBuffer{}
				m.taxa = nil
				m.err = nil
				m.processedFiles = 0
				m.failedFiles = 0
				m.totalFiles = 0
				m.receivedBytes = 0
				m.totalBytes = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.appendLog(msg.Event)

	case InitDoneMsg:
		m.drainLogs()
		if m.state != StateInitializing {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.taxa = msg.Taxa
			m.manager = msg.Manager
			m.state = StateDownloading
			_, _, _, m.totalFiles = msg.Manager.GetProgress()
			cmds = append(cmds, m.startDownload(msg.Manager))
		}

	case DownloadDoneMsg:
		m.drainLogs()
		if m.state != StateDownloading {
			break
		}
		m.receivedBytes = msg.Received
		m.totalBytes = msg.Total
		m.processedFiles = msg.Files
		m.totalFiles = msg.TotalF
		m.failedFiles = msg.Failed
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		m.drainLogs()
		if m.state == StateInitializing {
			cmds = append(cmds, m.tickProgress())
		}
		// Update progress from manager
		if m.manager != nil && m.state == StateDownloading {
			received, total, files, totalFiles := m.manager.GetProgress()
			m.receivedBytes = received
			m.totalBytes = total
			m.processedFiles = files
			m.totalFiles = totalFiles
			m.failedFiles = m.manager.FailedFiles()

			var percent float64
			if totalFiles > 0 {
				percent = float64(files) / float64(totalFiles)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// appendLog adds an event to the visible log, dropping verbose events
// unless verbose mode is on.
func (m *Model) appendLog(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *Model) drainLogs() {
	for _, e := range m.pending.drain() {
		m.appendLog(e)
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🐦 Bird Sound Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download bird recordings from a Darwin Core occurrence file"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Occurrence file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Tag MP3 files (ctrl+t)\n", checkbox(m.tag)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output folder: %s | Minimum files per taxon: %d",
		m.settings.OutputRoot, m.settings.MinFilesPerTaxon)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading occurrences and resolving media..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.taxa) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d taxa:", len(m.taxa))))
		b.WriteString("\n")
		for i, taxon := range m.taxa {
			if i == maxTaxaShown {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.taxa)-maxTaxaShown)))
				b.WriteString("\n")
				break
			}
			b.WriteString(taxonStyle.Render(fmt.Sprintf("  ♪ %s", taxon)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Failed: %d | Downloaded: %.2f MB",
		m.processedFiles,
		m.totalFiles,
		m.failedFiles,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Taxa: %d\n"+
			"Files: %d (%d failed)\n"+
			"Size: %.2f MB",
		len(m.taxa),
		m.processedFiles-m.failedFiles,
		m.failedFiles,
		float64(m.receivedBytes)/1024/1024,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+t: tag • ctrl+p: playlist • ctrl+v: verbose • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// runSettings copies the base settings and applies the UI options.
func (m Model) runSettings() *config.Settings {
	s := *m.settings
	s.ReferenceFields = append([]string(nil), m.settings.ReferenceFields...)
	s.DatasetPath = strings.TrimSpace(m.textInput.Value())
	s.TagAudio = m.tag
	s.CreatePlaylist = m.playlist
	return &s
}

// initializeDownload reads the dataset and creates the manager.
func (m Model) initializeDownload() tea.Cmd {
	settings := m.runSettings()
	ctx := m.ctx
	pending := m.pending

	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return InitDoneMsg{Err: err}
		}

		manager, err := download.NewManager(settings, pending.push)
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		if err := manager.Initialize(ctx, settings.DatasetPath); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Taxa:    manager.GetTaxonNames(),
			Manager: manager,
		}
	}
}

// startDownload starts the actual download in background.
func (m Model) startDownload(manager *download.Manager) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := manager.StartDownloads(ctx)
		received, total, files, totalFiles := manager.GetProgress()

		return DownloadDoneMsg{
			Received: received,
			Total:    total,
			Files:    files,
			TotalF:   totalFiles,
			Failed:   manager.FailedFiles(),
			Err:      err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
