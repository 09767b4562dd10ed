// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/reorder"
	"tasklist/internal/store"
)

// headerLines is the number of lines drawn above the first task row.
const headerLines = 2

// cursorWidth is the width of the selection prefix before each marker.
const cursorWidth = 2

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Model is the bubbletea model for the task list.
type Model struct {
	store  *store.Store
	drag   *reorder.Controller
	cfg    *config.Config
	logger *log.Logger
	styles styles

	snapshot    store.Snapshot
	unsubscribe func()

	cursor    int
	mode      mode
	editID    int64
	input     textinput.Model
	status    string
	statusErr bool

	// row and column of the last left press, for click handling on release
	pressRow int
	pressX   int
}

// NewModel creates a model over s. Call Close when done with it.
func NewModel(s *store.Store, cfg *config.Config, logger *log.Logger) *Model {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "> "
	if max := cfg.Validation.TaskTextMaxLength; max > 0 {
		ti.CharLimit = max
	}

	m := &Model{
		store:    s,
		drag:     reorder.NewController(s, reorder.WithLogger(logger)),
		cfg:      cfg,
		logger:   logger,
		styles:   defaultStyles(),
		input:    ti,
		pressRow: -1,
	}
	m.snapshot = s.Snapshot()
	m.unsubscribe = s.Subscribe(m.refresh)
	return m
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Run starts the full-screen interface and blocks until the user quits.
func Run(ctx context.Context, s *store.Store, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := NewModel(s, cfg, logger)
	defer m.Close()

	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	if m.cursor >= m.snapshot.Len() {
		m.cursor = m.snapshot.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		default:
			return m.updateList(msg)
		}
	case tea.MouseMsg:
		if m.mode == modeList {
			m.updateMouse(msg)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 4
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag.State() == reorder.Dragging {
		return m.updateKeyboardDrag(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.snapshot.Len()-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.input.SetValue(task.Text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "enter", "x":
		m.toggle(m.cursor)
	case "d", "delete":
		if task, ok := m.selected(); ok && m.store.Delete(task.ID) {
			m.setStatus("Task deleted")
		}
	case " ", "space":
		if err := m.drag.Start(m.cursor); err == nil {
			m.setStatus("Moving: up/down to move, space or enter to drop, esc to cancel")
		}
	}
	return m, nil
}

func (m *Model) updateKeyboardDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.drag.Cancel()
		return m, tea.Quit
	case "up", "k":
		m.drag.Step(-1)
	case "down", "j":
		m.drag.Step(1)
	case " ", "space", "enter":
		m.drop()
	case "esc", "q":
		m.drag.Cancel()
		m.setStatus("Move cancelled")
	}
	if _, current, ok := m.drag.Dragging(); ok {
		m.cursor = current
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyCtrlC:
		m.closeInput()
		return m, tea.Quit
	case tea.KeyEnter:
		value := m.input.Value()
		if m.mode == modeAdd {
			if _, ok := m.store.AddTodo(value); ok {
				m.cursor = m.snapshot.Len() - 1
				m.setStatus("Task added")
			}
			m.closeInput()
			return m, nil
		}
		if err := m.store.EditText(m.editID, value); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Task updated")
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	row, offset, onRow := m.rowAt(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onRow {
			return
		}
		m.cursor = row
		m.pressRow, m.pressX = row, msg.X
		if err := m.drag.Start(row); err != nil {
			m.logger.Debug("drag not started", "err", err)
		}
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft || !onRow {
			return
		}
		// hit test against the centre of the cell
		if m.drag.Hover(row, float64(offset)+0.5, float64(m.rowHeight())) {
			_, m.cursor, _ = m.drag.Dragging()
		}
	case tea.MouseActionRelease:
		pressRow, pressX := m.pressRow, m.pressX
		m.pressRow = -1
		if m.drag.State() != reorder.Dragging {
			return
		}
		if !onRow {
			// released off the list: the gesture never reached a drop target
			m.drag.Cancel()
			m.cursor = pressRow
			m.setStatus("Move cancelled")
			return
		}
		if moved := m.drop(); moved {
			return
		}
		if row == pressRow && m.onMarker(pressX) {
			m.toggle(row)
		}
	}
}

// drop ends the current drag and reports whether the store changed.
func (m *Model) drop() bool {
	moved, err := m.drag.End()
	if err != nil {
		m.setError(err)
		return false
	}
	if moved {
		m.setStatus("Task moved")
	} else {
		m.status = ""
	}
	return moved
}

func (m *Model) toggle(index int) {
	if index < 0 || index >= m.snapshot.Len() {
		return
	}
	task := m.snapshot.At(index)
	if task.Done {
		m.store.Incomplete(task.ID)
		return
	}
	m.store.Complete(task.ID)
}

func (m *Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= m.snapshot.Len() {
		return domain.Task{}, false
	}
	return m.snapshot.At(m.cursor), true
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editID = 0
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if errors.ShouldLogError(err) {
		m.logger.Warn("operation failed", "code", errors.GetErrorCode(err), "err", err)
	}
	m.status = errors.GetUserMessage(err)
	m.statusErr = true
}

func (m *Model) rowHeight() int {
	if h := m.cfg.Drag.RowHeight; h > 0 {
		return h
	}
	return 1
}

// rowAt maps a screen line to a task row and the line offset within it.
func (m *Model) rowAt(y int) (row, offset int, ok bool) {
	line := y - headerLines
	if line < 0 {
		return 0, 0, false
	}
	row, offset = line/m.rowHeight(), line%m.rowHeight()
	return row, offset, row < m.snapshot.Len()
}

func (m *Model) onMarker(x int) bool {
	width := lipgloss.Width(m.cfg.Display.PendingMarker)
	if w := lipgloss.Width(m.cfg.Display.DoneMarker); w > width {
		width = w
	}
	return x >= cursorWidth && x < cursorWidth+width
}

// order returns the tasks in display order, following the drag preview.
func (m *Model) order() []domain.Task {
	if m.drag.State() != reorder.Dragging {
		return m.snapshot.Tasks()
	}
	ids := m.drag.Order()
	tasks := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		if task, ok := m.snapshot.Find(id); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Tasks"))
	b.WriteString("\n\n")

	tasks := m.order()
	if len(tasks) == 0 {
		b.WriteString(m.styles.footer.Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
	}
	_, current, dragging := m.drag.Dragging()
	for i, task := range tasks {
		b.WriteString(m.renderRow(i, task, dragging && i == current))
	}

	b.WriteString("\n")
	total, done := m.store.Counts()
	b.WriteString(m.styles.footer.Render(fmt.Sprintf("%d / %d completed", done, total)))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("Add task\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("Edit task\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := m.styles.status
		if m.statusErr {
			style = m.styles.errorMsg
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.help.Render(m.helpText()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderRow(index int, task domain.Task, dragged bool) string {
	prefix := strings.Repeat(" ", cursorWidth)
	if index == m.cursor && m.mode == modeList {
		prefix = m.styles.cursor.Render(">") + " "
	}

	marker := m.cfg.Display.PendingMarker
	textStyle := m.styles.item
	if task.Done {
		marker = m.cfg.Display.DoneMarker
		textStyle = m.styles.done
	}
	if dragged {
		textStyle = m.styles.dragged
	}

	lines := make([]string, 0, m.rowHeight())
	lines = append(lines, prefix+marker+" "+textStyle.Render(task.Text))
	if m.rowHeight() > 1 && m.cfg.Display.ShowCreated {
		meta := task.CreatedAt.Format(m.cfg.Display.TimeFormat) + " " + task.CreatedAt.Format(m.cfg.Display.DateFormat)
		indent := strings.Repeat(" ", cursorWidth+lipgloss.Width(marker)+1)
		lines = append(lines, indent+m.styles.meta.Render(meta))
	}
	for len(lines) < m.rowHeight() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *Model) helpText() string {
	switch {
	case m.mode != modeList:
		return "enter: save  esc: cancel"
	case m.drag.State() == reorder.Dragging:
		return "up/down: move  space/enter: drop  esc: cancel"
	default:
		return "a: add  e: edit  x/enter: toggle  d: delete  space: move  drag with mouse  q: quit"
	}
}
