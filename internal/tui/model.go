// Package tui рисует интерфейс управления пользователями в терминале
// поверх manager.Manager: форма, поиск и таблица.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"user-manager/internal/manager"
	"user-manager/internal/model"
)

// NoUsersPlaceholder — строка таблицы для пустого результата.
const NoUsersPlaceholder = "No users found"

type focus int

const (
	focusName focus = iota
	focusEmail
	focusSearch
	focusTable
	focusCount
)

// actionDoneMsg приходит, когда сетевое действие завершилось; состояние
// уже обновлено в Manager.
type actionDoneMsg struct {
	err error
}

// Model — bubbletea-модель интерфейса.
type Model struct {
	ctx context.Context
	mgr *manager.Manager

	name   textinput.Model
	email  textinput.Model
	search textinput.Model
	table  table.Model
	focus  focus

	state      manager.State
	loading    bool
	confirming bool
	pendingID  int64

	width  int
	height int
}

// New создаёт модель. Начальная загрузка списка запускается в Init.
func New(ctx context.Context, mgr *manager.Manager) Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 0
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 0
	email.Prompt = ""

	search := textinput.New()
	search.Placeholder = "Search by name or email..."
	search.CharLimit = 0
	search.Prompt = ""

	m := Model{
		ctx:     ctx,
		mgr:     mgr,
		name:    name,
		email:   email,
		search:  search,
		loading: true,
		state:   mgr.Snapshot(),
		height:  24,
	}
	m.table = table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(m.tableHeight()),
	)
	m = m.withFocus(focusName)
	return m.withRows()
}

// Run запускает интерфейс и блокируется до выхода.
func Run(ctx context.Context, mgr *manager.Manager) error {
	p := tea.NewProgram(New(ctx, mgr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case actionDoneMsg:
		m.loading = false
		return m.synced(), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		m.loading = true
		return m, m.removeCmd(m.pendingID, true)
	case "n", "N", "esc":
		m.confirming = false
		_, _ = m.mgr.Remove(m.ctx, m.pendingID, answer(false))
		return m.synced(), nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.withFocus((m.focus + 1) % focusCount), textinput.Blink
	case "shift+tab":
		return m.withFocus((m.focus + focusCount - 1) % focusCount), textinput.Blink
	case "esc":
		if m.state.Mode() == manager.ModeEditing {
			m.mgr.CancelEdit()
			return m.synced(), nil
		}
		m.mgr.DismissNotice()
		return m.synced(), nil
	case "ctrl+r":
		m.loading = true
		return m, m.fetchCmd()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName, focusEmail:
		if msg.String() == "enter" {
			m.loading = true
			return m, m.submitCmd()
		}
		if m.focus == focusName {
			m.name, cmd = m.name.Update(msg)
			m.mgr.SetName(m.name.Value())
		} else {
			m.email, cmd = m.email.Update(msg)
			m.mgr.SetEmail(m.email.Value())
		}
		m.state = m.mgr.Snapshot()
		return m, cmd

	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		m.mgr.SetSearch(m.search.Value())
		return m.synced(), cmd

	case focusTable:
		switch msg.String() {
		case "e", "enter":
			if u, ok := m.selected(); ok {
				m.mgr.StartEdit(u)
				m = m.synced()
				return m.withFocus(focusName), textinput.Blink
			}
			return m, nil
		case "d", "delete":
			if u, ok := m.selected(); ok {
				m.confirming = true
				m.pendingID = u.ID
			}
			return m, nil
		case "q":
			return m, tea.Quit
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selected возвращает пользователя под курсором таблицы.
func (m Model) selected() (model.User, bool) {
	visible := m.state.Visible()
	i := m.table.Cursor()
	if i < 0 || i >= len(visible) {
		return model.User{}, false
	}
	return visible[i], true
}

// synced перечитывает состояние Manager в поля ввода и таблицу.
func (m Model) synced() Model {
	m.state = m.mgr.Snapshot()
	if m.name.Value() != m.state.Form.Name {
		m.name.SetValue(m.state.Form.Name)
	}
	if m.email.Value() != m.state.Form.Email {
		m.email.SetValue(m.state.Form.Email)
	}
	if m.search.Value() != m.state.Search {
		m.search.SetValue(m.state.Search)
	}
	return m.withRows()
}

func (m Model) withRows() Model {
	visible := m.state.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, u := range visible {
		rows = append(rows, table.Row{strconv.FormatInt(u.ID, 10), u.Name, u.Email})
	}
	if len(rows) == 0 {
		rows = append(rows, table.Row{"", NoUsersPlaceholder, ""})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
	return m
}

func (m Model) withFocus(f focus) Model {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.search.Blur()
	m.table.Blur()
	switch f {
	case focusName:
		m.name.Focus()
	case focusEmail:
		m.email.Focus()
	case focusSearch:
		m.search.Focus()
	case focusTable:
		m.table.Focus()
	}
	return m
}

func (m Model) tableHeight() int {
	h := m.height - 14
	if h < 3 {
		h = 3
	}
	return h
}

func columns(width int) []table.Column {
	emailWidth := width - 6 - 24 - 12
	if emailWidth < 24 {
		emailWidth = 24
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Email", Width: emailWidth},
	}
}

func (m Model) fetchCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{err: mgr.FetchAll(ctx)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{err: mgr.Submit(ctx)}
	}
}

func (m Model) removeCmd(id int64, ok bool) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		_, err := mgr.Remove(ctx, id, answer(ok))
		return actionDoneMsg{err: err}
	}
}

// answer — ответ, уже полученный в режиме подтверждения.
func answer(ok bool) manager.Confirmer {
	return manager.ConfirmFunc(func(string) bool { return ok })
}

func (m Model) View() string {
	editing := m.state.Mode() == manager.ModeEditing

	lines := []string{StyleTitle.Render("User Management"), ""}

	lines = append(lines, m.field("Name", m.name.View(), m.focus == focusName))
	lines = append(lines, m.field("Email", m.email.View(), m.focus == focusEmail))

	button := StyleAddButton.Render("Add")
	if editing {
		button = StyleUpdateButton.Render("Update")
		if m.state.EditingID != nil {
			button += StyleDim.Render(fmt.Sprintf("  editing #%d", *m.state.EditingID))
		}
		button += "  " + StyleHelp.Render("[Esc] Cancel Edit")
	}
	lines = append(lines, "  "+button, "")

	lines = append(lines, m.field("Search", m.search.View(), m.focus == focusSearch), "")
	lines = append(lines, m.table.View())

	switch {
	case m.confirming:
		lines = append(lines, StyleWarning.Render(manager.DeletePrompt+" [y] yes   [n] no"))
	case m.loading:
		lines = append(lines, StyleDim.Render("Loading..."))
	case m.state.Notice != nil && m.state.Notice.IsError():
		lines = append(lines, StyleError.Render(m.state.Notice.Message))
	case m.state.Notice != nil:
		lines = append(lines, StyleSuccess.Render(m.state.Notice.Message))
	default:
		lines = append(lines, "")
	}

	lines = append(lines,
		StyleHelp.Render("[Tab] next field   [Enter] submit   [ctrl+r] refresh"),
		StyleHelp.Render("table: [e] edit   [d] delete   [q] quit   |   [ctrl+c] quit"),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m Model) field(label, view string, focused bool) string {
	l := fmt.Sprintf("%-8s", label+":")
	if focused {
		return StyleFocused.Render(l) + " " + view
	}
	return StyleLabel.Render(l) + " " + view
}
