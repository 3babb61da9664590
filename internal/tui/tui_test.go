package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/birdsound-dl/internal/config"
	"github.com/handiism/birdsound-dl/internal/download"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if got := m.textInput.Value(); got != "occurrence.txt" {
		t.Errorf("input = %q, want occurrence.txt", got)
	}
	if !strings.Contains(m.View(), "Bird Sound Downloader") {
		t.Error("View should render the title")
	}
}

func TestModel_ToggleOptions(t *testing.T) {
	m := NewModel(nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlV})

	if !m.tag || !m.playlist || !m.verbose {
		t.Errorf("options = tag %v, playlist %v, verbose %v; want all on", m.tag, m.playlist, m.verbose)
	}
	if got := m.textInput.Value(); got != "occurrence.txt" {
		t.Errorf("toggles changed input to %q", got)
	}

	s := m.runSettings()
	if !s.TagAudio || !s.CreatePlaylist {
		t.Errorf("runSettings = %+v", s)
	}
	if m.settings.TagAudio || m.settings.CreatePlaylist {
		t.Error("runSettings mutated the base settings")
	}
}

func TestModel_VerboseFilter(t *testing.T) {
	m := NewModel(nil)

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})
	if len(m.logs) != 0 {
		t.Errorf("verbose event shown with verbose off: %v", m.logs)
	}

	m.verbose = true
	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "shown", Level: download.LevelVerbose}})
	if len(m.logs) != 1 || m.logs[0].Message != "shown" {
		t.Errorf("logs = %v", m.logs)
	}
}

func TestModel_LogCap(t *testing.T) {
	m := NewModel(nil)
	for i := 0; i < 15; i++ {
		m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: fmt.Sprintf("event %d", i), Level: download.LevelInfo}})
	}

	if len(m.logs) != maxLogs {
		t.Fatalf("got %d logs, want %d", len(m.logs), maxLogs)
	}
	if m.logs[0].Message != "event 5" {
		t.Errorf("oldest log = %q, want event 5", m.logs[0].Message)
	}
}

func TestModel_TickDrainsEvents(t *testing.T) {
	m := NewModel(nil)
	m.state = StateInitializing

	m.pending.push(download.ProgressEvent{Message: "Found taxon: Parus major (10 files)", Level: download.LevelInfo})
	m = update(t, m, TickMsg{})

	if len(m.logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(m.logs))
	}
	if len(m.pending.drain()) != 0 {
		t.Error("buffer not drained")
	}
}

func TestModel_InitError(t *testing.T) {
	m := NewModel(nil)
	m.state = StateInitializing

	m = update(t, m, InitDoneMsg{Err: errors.New("input unreadable")})

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.View(), "input unreadable") {
		t.Error("View should show the error")
	}
}

func TestModel_Cancel(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateInitializing

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.state != StateError || !errors.Is(m.err, errCancelled) {
		t.Errorf("state = %v, err = %v", m.state, m.err)
	}
	if m.ctx.Err() == nil {
		t.Error("context not cancelled")
	}

	// A late init result does not leave the error state.
	m = update(t, m, InitDoneMsg{Taxa: []string{"x"}})
	if m.state != StateError {
		t.Errorf("state = %v after late InitDoneMsg", m.state)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateInput || m.ctx.Err() != nil {
		t.Errorf("reset left state %v, ctx err %v", m.state, m.ctx.Err())
	}
}
