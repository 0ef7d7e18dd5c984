package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/internal/core"
	"github.com/valter-silva-au/task-cli/pkg/models"
)

type boardModel struct {
	mgr       core.TaskManager
	activeCol int
	cursors   [3]int
	columns   [3][]models.Task
	width     int
	height    int
	loading   bool
	status    string
	err       error
}

// tasksLoadedMsg carries the task collection back to the model.
type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

// taskMarkedMsg reports the result of a status change.
type taskMarkedMsg struct {
	task *models.Task
	err  error
}

func newBoardModel(mgr core.TaskManager) boardModel {
	return boardModel{mgr: mgr, loading: true}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadTasks
}

func (m boardModel) loadTasks() tea.Msg {
	tasks, err := m.mgr.ListTasks(models.FilterAll)
	if err != nil {
		return tasksLoadedMsg{err: fmt.Errorf("loading tasks: %w", err)}
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (m boardModel) markSelected(status models.TaskStatus) tea.Cmd {
	task, ok := m.selected()
	if !ok || task.Status == status {
		return nil
	}
	id := task.ID
	return func() tea.Msg {
		marked, err := m.mgr.MarkTask(id, status)
		return taskMarkedMsg{task: marked, err: err}
	}
}

func (m boardModel) selected() (models.Task, bool) {
	col := m.columns[m.activeCol]
	if len(col) == 0 {
		return models.Task{}, false
	}
	return col[m.cursors[m.activeCol]], true
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "tab":
			m.activeCol = (m.activeCol + 1) % len(m.columns)
		case "left", "h", "shift+tab":
			m.activeCol = (m.activeCol - 1 + len(m.columns)) % len(m.columns)
		case "down", "j":
			if m.cursors[m.activeCol] < len(m.columns[m.activeCol])-1 {
				m.cursors[m.activeCol]++
			}
		case "up", "k":
			if m.cursors[m.activeCol] > 0 {
				m.cursors[m.activeCol]--
			}
		case "t":
			return m, m.markSelected(models.StatusTodo)
		case "p":
			return m, m.markSelected(models.StatusInProgress)
		case "d":
			return m, m.markSelected(models.StatusDone)
		case "r":
			m.loading = true
			return m, m.loadTasks
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setTasks(msg.tasks)
		return m, nil

	case taskMarkedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("Task %d marked as %s", msg.task.ID, msg.task.Status)
		return m, m.loadTasks
	}

	return m, nil
}

func (m *boardModel) setTasks(tasks []models.Task) {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range tasks {
		if idx := columnIndex(t.Status); idx >= 0 {
			m.columns[idx] = append(m.columns[idx], t)
		}
	}
	for i := range m.cursors {
		if m.cursors[i] >= len(m.columns[i]) {
			m.cursors[i] = max(len(m.columns[i])-1, 0)
		}
	}
}

func columnIndex(status models.TaskStatus) int {
	for i, s := range models.Statuses {
		if s == status {
			return i
		}
	}
	return -1
}

func (m boardModel) View() string {
	title := titleStyle.Render(" Task Board ")
	help := helpStyle.Render("←/→: column | ↑/↓: select | t/p/d: mark todo/in-progress/done | r: reload | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading tasks...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	colWidth := 30
	if m.width > 0 {
		colWidth = max((m.width-2)/len(m.columns)-4, 20)
	}

	panels := make([]string, len(m.columns))
	for i := range m.columns {
		style := panelStyle
		if i == m.activeCol {
			style = activePanelStyle
		}
		panels[i] = style.Width(colWidth).Render(m.renderColumn(i))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	out := fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

func (m boardModel) renderColumn(i int) string {
	status := models.Statuses[i]
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", status, len(m.columns[i]))))
	b.WriteString("\n")

	if len(m.columns[i]) == 0 {
		b.WriteString(helpStyle.Render("  empty"))
		return b.String()
	}

	for j, t := range m.columns[i] {
		line := fmt.Sprintf("%d  %s", t.ID, t.Description)
		if i == m.activeCol && j == m.cursors[i] {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(styleForStatus(status).Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// runBoard starts the board program. Overridden in tests.
var runBoard = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open an interactive board of tasks grouped by status",
	Long: `Open a terminal board with one column per status. Move between
columns and tasks with the arrow keys, then press t, p or d to move the
selected task to todo, in-progress or done.`,
	Args: argsBetween(0, 0, ""),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTaskMgr(); err != nil {
			return err
		}
		return runBoard(newBoardModel(TaskMgr))
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
