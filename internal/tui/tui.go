// Package tui is the interactive terminal front end. One program run is one
// session: every key that changes the inventory is followed by a rebuild of
// the list and the summary from the inventory itself.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/Makepad-fr/stock/internal/log"
	"github.com/Makepad-fr/stock/internal/session"
	"github.com/Makepad-fr/stock/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options tune the program.
type Options struct {
	Debug  bool
	Logger log.Logger
}

// listItem adapts one inventory position to bubbles/list.Item.
type listItem struct {
	Index int // position in the inventory, stable under filtering
	Name  string
}

func (i listItem) FilterValue() string { return i.Name }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	line := fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("%2d.", it.Index+1)), it.Name)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	adding
	removing
)

// Model implements tea.Model over one session.
type Model struct {
	sess *session.Session
	opt  Options

	list list.Model
	ti   textinput.Model
	mode mode

	status    string
	statusErr bool

	showSummary   bool
	width, height int
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	removeBind  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove by name"))
	deleteBind  = key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove selected"))
	summaryBind = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary"))
)

// New builds the model for s.
func New(s *session.Session, opt Options) Model {
	if opt.Logger == nil {
		opt.Logger = log.Discard
	}
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, removeBind, deleteBind, summaryBind} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		sess:        s,
		opt:         opt,
		list:        l,
		ti:          ti,
		showSummary: true,
		width:       80,
		height:      24,
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(s *session.Session, opt Options) error {
	p := tea.NewProgram(New(s, opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != browsing {
		return m.updateInput(msg)
	}

	k, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch k.String() {
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied && k.String() == "esc" {
			break
		}
		return m, tea.Quit
	case "a":
		m.startInput(adding, "New item name...")
		return m, nil
	case "r":
		m.startInput(removing, "Name to remove...")
		if it, ok := m.list.SelectedItem().(listItem); ok {
			m.ti.SetValue(it.Name)
			m.ti.CursorEnd()
		}
		return m, nil
	case "d", "x":
		it, ok := m.list.SelectedItem().(listItem)
		if !ok {
			m.setStatus("nothing to remove", true)
			return m, nil
		}
		m.mutate(func(inv *inventory.Inventory) (string, error) {
			name, err := inv.RemoveAt(it.Index)
			return "removed " + name, err
		})
		return m, nil
	case "s":
		m.showSummary = !m.showSummary
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			value := m.ti.Value()
			var err error
			if m.mode == adding {
				err = m.mutate(func(inv *inventory.Inventory) (string, error) {
					name, err := inv.Add(value)
					return "added " + name, err
				})
			} else {
				err = m.mutate(func(inv *inventory.Inventory) (string, error) {
					name, err := inv.RemoveOne(value)
					return "removed " + name, err
				})
			}
			if err == nil {
				m.stopInput()
			}
			return m, nil
		case "esc":
			m.stopInput()
			m.status = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, placeholder string) {
	m.mode = md
	m.status = ""
	m.ti.SetValue("")
	m.ti.Placeholder = placeholder
	m.ti.Focus()
	m.resize()
}

func (m *Model) stopInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// mutate applies one change, then rebuilds the view from the inventory.
// Failures leave the inventory untouched and are shown in the status line.
func (m *Model) mutate(fn func(inv *inventory.Inventory) (string, error)) error {
	var msg string
	err := m.sess.Do(func(inv *inventory.Inventory) error {
		var err error
		msg, err = fn(inv)
		return err
	})
	if err != nil {
		m.setStatus(describe(err), true)
		return err
	}
	m.setStatus(msg, false)
	m.refresh()
	if m.opt.Debug {
		log.Dump(m.opt.Logger, "state", m.sess.Inventory().Summarize())
	}
	return nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m *Model) refresh() {
	inv := m.sess.Inventory()
	names := inv.Items()
	items := make([]list.Item, 0, len(names))
	for i, n := range names {
		items = append(items, listItem{Index: i, Name: n})
	}
	sel := m.list.Index()
	m.list.SetItems(items)
	if sel >= len(items) {
		sel = len(items) - 1
	}
	if sel >= 0 {
		m.list.Select(sel)
	}

	entries := inv.Entries()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Inventory"),
		accentStyle.Render("items"), len(names),
		accentStyle.Render("distinct"), len(entries),
	)
}

func (m *Model) resize() {
	w := m.width - 4
	if m.showSummary {
		w = w - w/3
	}
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.showSummary {
		inv := m.sess.Inventory()
		summary := titleStyle.Render("Summary") + "\n\n" + strings.Join(ui.SummaryLines(inv.Entries(), inv.Len()), "\n")
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", summary)
	}
	if m.mode != browsing {
		title := "Add item"
		if m.mode == removing {
			title = "Remove item by name"
		}
		if m.status != "" && m.statusErr {
			title += "  " + errorStyle.Render(m.status)
		}
		content += "\n" + paneStyle.Render(title+"\n"+m.ti.View())
	} else if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return paneStyle.Render(content)
}

// Status is the last message shown to the user.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func describe(err error) string {
	switch {
	case errors.Is(err, inventory.ErrEmptyName):
		return "Item name cannot be empty"
	case errors.Is(err, session.ErrUnknown):
		return "Session has ended"
	}
	return err.Error()
}
