package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	rw "github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/catalog"
	"github.com/webgovernor/dirtools/internal/history"
	"github.com/webgovernor/dirtools/internal/permission"
	"github.com/webgovernor/dirtools/internal/result"
	"github.com/webgovernor/dirtools/internal/tools"
)

// Mode controls whether tools that change the filesystem may run.
type Mode int

const (
	// ReadMode only runs read-only tools.
	ReadMode Mode = iota

	// WriteMode also runs tools that change the filesystem, after approval.
	WriteMode
)

func (m Mode) String() string {
	switch m {
	case ReadMode:
		return "read"
	case WriteMode:
		return "write"
	default:
		return "unknown"
	}
}

// Options wires the console to the tool stack.
type Options struct {
	Registry    *tools.Registry
	Permissions *permission.Service
	// History is nil when the journal is disabled.
	History  *history.Service
	WorkDir  string
	Backend  string
	Logger   zerolog.Logger
	ReadOnly bool
}

// Model is the top-level bubbletea model for the application.
type Model struct {
	mode     Mode
	keys     KeyMap
	input    Input
	messages MessageList
	opts     Options
	ctx      context.Context
	width    int
	height   int

	calls   int
	running string
	pending *permission.Request

	past   []string // submitted lines, oldest first
	recall int
}

// New creates the console model.
func New(ctx context.Context, opts Options) Model {
	if opts.Permissions == nil {
		opts.Permissions = permission.NewService()
	}
	mode := WriteMode
	if opts.ReadOnly {
		mode = ReadMode
	}
	return Model{
		mode:     mode,
		keys:     DefaultKeyMap(),
		input:    NewInput(),
		messages: NewMessageList(),
		opts:     opts,
		ctx:      opts.Logger.With().Str("transport", "console").Logger().WithContext(ctx),
	}
}

// toolDoneMsg carries the outcome of a tool call.
type toolDoneMsg struct {
	tool   string
	output string
	took   time.Duration
}

// permissionRequestMsg asks the user to approve a call.
type permissionRequestMsg permission.Request

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("dirtools"),
		m.input.Focus(),
		waitForPermission(m.opts.Permissions),
	)
}

func waitForPermission(perms *permission.Service) tea.Cmd {
	return func() tea.Msg {
		return permissionRequestMsg(<-perms.RequestCh())
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width)
		return m, nil

	case permissionRequestMsg:
		req := permission.Request(msg)
		m.pending = &req
		m.input.Blur()
		m.messages.Add(SystemRole, fmt.Sprintf("%s changes the filesystem. Allow? [y]es, [a]lways this session, [n]o", req.Summary))
		return m, waitForPermission(m.opts.Permissions)

	case toolDoneMsg:
		m.running = ""
		m.calls++
		m.syncCalls()
		m.messages.AddToolResult(msg.tool, msg.output, result.IsError(msg.output), msg.took)
		return m, m.input.Focus()

	case tea.KeyMsg:
		if m.pending != nil {
			return m.answer(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleMode):
			if m.mode == ReadMode {
				m.mode = WriteMode
				m.messages.Add(SystemRole, "Switched to WRITE mode. Tools that change the filesystem run after approval.")
			} else {
				m.mode = ReadMode
				m.messages.Add(SystemRole, "Switched to READ mode. Tools that change the filesystem are blocked.")
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollUp):
			m.messages.ScrollUp(max(1, m.height/2))
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.messages.ScrollDown(max(1, m.height/2))
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.messages.Add(DocRole, m.helpDoc())
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			m.input.Reset()
			return m, nil

		case msg.Type == tea.KeyUp || msg.Type == tea.KeyDown:
			m.recallLine(msg.Type == tea.KeyUp)
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			val := strings.TrimSpace(m.input.Value())
			if val == "" {
				return m, nil
			}
			if m.running != "" {
				m.messages.Add(SystemRole, fmt.Sprintf("%s is still running.", m.running))
				return m, nil
			}
			return m.submit(val)
		}
	}

	// Forward remaining messages to the text input
	cmd := m.input.Update(msg)
	return m, cmd
}

// answer resolves the pending permission request.
func (m Model) answer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var resp permission.Response
	switch {
	case key.Matches(msg, m.keys.Approve):
		resp = permission.Allow
	case key.Matches(msg, m.keys.ApproveSession):
		resp = permission.AllowForSession
	case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Quit):
		resp = permission.Deny
	default:
		return m, nil
	}

	m.pending.ResponseCh <- resp
	zerolog.Ctx(m.ctx).Info().Str("tool", m.pending.ToolName).Str("response", resp.String()).Msg("Permission answered")
	m.pending = nil
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	return m, m.input.Focus()
}

func (m *Model) recallLine(older bool) {
	if len(m.past) == 0 {
		return
	}
	if older {
		m.recall = max(0, m.recall-1)
	} else {
		m.recall = min(len(m.past), m.recall+1)
	}
	if m.recall == len(m.past) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.past[m.recall])
}

func (m Model) submit(val string) (tea.Model, tea.Cmd) {
	m.past = append(m.past, val)
	m.recall = len(m.past)
	m.messages.Add(UserRole, val)
	m.input.Reset()

	cmd, err := ParseCommand(val, m.opts.Registry)
	if err != nil {
		m.messages.Add(SystemRole, "Error: "+err.Error())
		return m, nil
	}

	switch cmd.Builtin {
	case cmdHelp:
		m.messages.Add(DocRole, m.helpDoc())
		return m, nil
	case cmdTools:
		m.messages.Add(DocRole, catalog.Tools(m.opts.Registry))
		return m, nil
	case cmdHistory:
		switch cmd.Arg {
		case "":
			m.messages.Add(DocRole, m.historyDoc())
		case "clear":
			m.clearHistory()
		default:
			m.messages.Add(SystemRole, fmt.Sprintf("Error: unknown history argument %q, use history or history clear.", cmd.Arg))
		}
		return m, nil
	case cmdClear:
		m.messages.Clear()
		return m, nil
	case cmdReset:
		m.opts.Permissions.Reset()
		m.messages.Add(SystemRole, "Session approvals cleared.")
		return m, nil
	case cmdQuit:
		return m, tea.Quit
	}

	if cmd.Tool.RequiresPermission() && m.mode == ReadMode {
		m.messages.Add(SystemRole, fmt.Sprintf(
			"Error: %s changes the filesystem and is blocked in READ mode. Press ctrl+t to switch to WRITE mode.", cmd.Tool.Name()))
		return m, nil
	}

	m.running = cmd.Tool.Name()
	m.input.Blur()
	return m, runTool(m.ctx, m.opts.Registry, m.opts.Permissions, cmd.Tool, cmd.Input)
}

// runTool executes t off the UI goroutine, asking for approval first when the
// tool changes the filesystem.
func runTool(ctx context.Context, registry *tools.Registry, perms *permission.Service, t tools.Tool, input json.RawMessage) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if t.RequiresPermission() && perms.Check(ctx, t.Name(), input) == permission.Deny {
			zerolog.Ctx(ctx).Warn().Str("tool", t.Name()).Msg("Tool call denied")
			return toolDoneMsg{
				tool:   t.Name(),
				output: fmt.Sprintf("Error: Permission denied for %s.", t.Name()),
				took:   time.Since(start),
			}
		}
		out := registry.Execute(ctx, t.Name(), input)
		return toolDoneMsg{tool: t.Name(), output: out, took: time.Since(start)}
	}
}

// syncCalls takes the header count from the journal when one is open, so it
// matches what history lists.
func (m *Model) syncCalls() {
	if m.opts.History == nil {
		return
	}
	n, err := m.opts.History.Count()
	if err != nil {
		zerolog.Ctx(m.ctx).Error().Err(err).Msg("Failed to count journaled calls")
		return
	}
	m.calls = n
}

func (m *Model) clearHistory() {
	if m.opts.History == nil {
		m.messages.Add(SystemRole, "The journal is disabled.")
		return
	}
	if err := m.opts.History.Clear(); err != nil {
		zerolog.Ctx(m.ctx).Error().Err(err).Msg("Failed to clear history")
		m.messages.Add(SystemRole, "Error: "+err.Error())
		return
	}
	m.syncCalls()
	m.messages.Add(SystemRole, "History cleared.")
}

func (m Model) helpDoc() string {
	return catalog.ConsoleHelp() + "\n" + catalog.Environment(m.opts.WorkDir, m.opts.Backend, m.mode == ReadMode)
}

const historyRows = 20

func (m Model) historyDoc() string {
	if m.opts.History == nil {
		return "# History\n\nThe journal is disabled."
	}
	calls, err := m.opts.History.Recent(historyRows)
	if err != nil {
		zerolog.Ctx(m.ctx).Error().Err(err).Msg("Failed to read history")
		return "# History\n\nError: " + err.Error()
	}
	if len(calls) == 0 {
		return "# History\n\nNo calls yet in this session."
	}

	var sb strings.Builder
	sb.WriteString("# History\n\n| Time | Tool | Arguments | Outcome | Took |\n|---|---|---|---|---|\n")
	for _, c := range calls {
		outcome, _, _ := strings.Cut(c.Output, "\n")
		fmt.Fprintf(&sb, "| %s | %s | `%s` | %s | %s |\n",
			c.CreatedAt.Local().Format("15:04:05"),
			c.Tool,
			rw.Truncate(c.Input, 40, "…"),
			strings.ReplaceAll(rw.Truncate(outcome, 60, "…"), "|", "\\|"),
			c.Duration,
		)
	}
	return sb.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	prompt := ""
	if m.pending != nil {
		prompt = permissionStyle.Width(m.width-4).Render(
			fmt.Sprintf("Allow %s?  [y] yes  [a] always this session  [n] no", m.pending.Summary))
	}

	// Layout: header (1 line) + messages (flexible) + input (dynamic) + status (1 line)
	headerHeight := 1
	inputHeight := m.input.Height()
	if prompt != "" {
		inputHeight = strings.Count(prompt, "\n") + 1
	}
	statusHeight := 1
	separatorLines := 2 // blank lines between sections
	msgHeight := max(3, m.height-headerHeight-inputHeight-statusHeight-separatorLines)

	header := HeaderView(m.mode, m.opts.WorkDir, m.calls, m.width)
	msgs := m.messages.View(m.width, msgHeight)
	input := prompt
	if input == "" {
		input = m.input.View(m.width, m.mode)
	}
	status := StatusBarView(m.mode, m.opts.Backend, m.width, m.running, m.pending != nil)

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, msgs, input, status)
}
