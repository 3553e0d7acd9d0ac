package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// Model is the playlist selection state: a cursor into a reorderable list
// and a membership set keyed by playlist ID, so selections follow playlists
// through reordering instead of sticking to row indexes.
type Model struct {
	playlists []models.Playlist
	cursor    int
	selected  map[string]struct{}
	confirmed bool
	aborted   bool
	keys      keyMap
	help      help.Model
	width     int
	height    int
}

var _ tea.Model = (*Model)(nil)

// NewModel creates a selection model over the given playlists.
func NewModel(playlists []models.Playlist) *Model {
	return &Model{
		playlists: playlists,
		selected:  map[string]struct{}{},
		keys:      newKeyMap(),
		help:      help.New(),
	}
}

// Init implements [tea.Model]; the model is fully populated at construction.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles one keystroke per iteration and redraws after each.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.down):
			if m.cursor < len(m.playlists)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.toggle):
			if len(m.playlists) > 0 {
				m.toggle(m.playlists[m.cursor].ID)
			}

		case key.Matches(msg, m.keys.moveUp):
			if m.cursor > 0 {
				m.playlists[m.cursor], m.playlists[m.cursor-1] = m.playlists[m.cursor-1], m.playlists[m.cursor]
				m.cursor--
			}

		case key.Matches(msg, m.keys.moveDown):
			if m.cursor < len(m.playlists)-1 {
				m.playlists[m.cursor], m.playlists[m.cursor+1] = m.playlists[m.cursor+1], m.playlists[m.cursor]
				m.cursor++
			}

		case key.Matches(msg, m.keys.confirm):
			m.confirmed = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.quit):
			m.aborted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) toggle(id string) {
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
}

// View renders the instruction banner and one row per playlist: a checkbox
// marker, the name, and a highlight on the cursor row.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Select playlists to export"))
	b.WriteString("\n")
	b.WriteString(styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	b.WriteString("\n\n")

	for i, p := range m.playlists {
		marker := "[ ]"
		if _, ok := m.selected[p.ID]; ok {
			marker = styles.marked.Render("[x]")
		}

		row := fmt.Sprintf("%s %s (%d tracks)", marker, p.Name, p.TrackCount)
		if i == m.cursor {
			b.WriteString(styles.cursor.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if len(m.selected) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.err.Render("nothing selected: confirming now cancels the export"))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the chosen playlists in final list order.
func (m *Model) Selected() []models.Playlist {
	chosen := make([]models.Playlist, 0, len(m.selected))
	for _, p := range m.playlists {
		if _, ok := m.selected[p.ID]; ok {
			chosen = append(chosen, p)
		}
	}
	return chosen
}

// resolve turns the model's final state into a selection. Only an explicit
// confirm counts: quitting, or a program that ended without either keystroke,
// is an abort.
func (m *Model) resolve() ([]models.Playlist, error) {
	if m.aborted || !m.confirmed {
		return nil, shared.ErrSelectionAborted
	}

	chosen := m.Selected()
	if len(chosen) == 0 {
		return nil, shared.ErrEmptySelection
	}

	return chosen, nil
}

// Select runs the blocking full-screen selection over the given playlists
// and returns the chosen subset in the user's final order.
//
// Confirming with nothing chosen and aborting both return an error; callers
// treat either as fatal rather than exporting nothing.
func Select(playlists []models.Playlist) ([]models.Playlist, error) {
	m := NewModel(playlists)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("selection UI error: %w", err)
	}

	result, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected selection model type %T", final)
	}

	return result.resolve()
}
