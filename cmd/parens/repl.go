package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mgomes/parens/parens"
)

var (
	accentColor    = lipgloss.Color("#8B5CF6")
	successColor   = lipgloss.Color("#10B981")
	failureColor   = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle   = lipgloss.NewStyle().Foreground(successColor)
	errorStyle    = lipgloss.NewStyle().Foreground(failureColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(highlightColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const replPrompt = "parens> "

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	config      *cliConfig
	engine      *parens.Engine
	scope       *parens.Scope
	out         *bytes.Buffer
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
	Clear key.Binding
	Tab   key.Binding
	Vars  key.Binding
	Help  key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete name")),
	Vars:  key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "toggle bindings")),
	Help:  key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "toggle help")),
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "YAML config file")
	trace := fs.Bool("trace", false, "log evaluation at debug level to stderr")
	plain := fs.Bool("plain", false, "read lines from stdin instead of starting the TUI")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if !*plain {
		m, err := newREPLModel(cfg, *trace)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}

	engine, err := cfg.newEngine(os.Stdout, *trace)
	if err != nil {
		return err
	}
	scope, err := cfg.newScope(context.Background(), engine)
	if err != nil {
		return err
	}
	return runPlainREPL(context.Background(), os.Stdin, os.Stdout, engine, scope)
}

// runPlainREPL evaluates one line at a time against scope until input ends or
// the user types :quit. Errors are reported and the loop continues.
func runPlainREPL(ctx context.Context, in io.Reader, out io.Writer, engine *parens.Engine, scope *parens.Scope) error {
	prompt := color.New(color.FgMagenta, color.Bold)
	scanner := bufio.NewScanner(in)
	for {
		prompt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		lineCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		_, err := engine.EvaluateSource(lineCtx, line, scope)
		stop()
		if err != nil {
			errorColor.Fprintln(out, err)
		}
	}
}

func newREPLModel(cfg *cliConfig, trace bool) (replModel, error) {
	ti := textinput.New()
	ti.Placeholder = "(+ 1 2)"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	out := new(bytes.Buffer)
	engine, err := cfg.newEngine(out, trace)
	if err != nil {
		return replModel{}, err
	}
	scope, err := cfg.newScope(context.Background(), engine)
	if err != nil {
		return replModel{}, err
	}
	out.Reset()

	return replModel{
		textInput:  ti,
		config:     cfg,
		engine:     engine,
		scope:      scope,
		out:        out,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}, nil
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.Vars):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			return m.handleAutocomplete(), nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.historyIdx = -1
			if strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
			m.cmdHistory = append(m.cmdHistory, input)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		scope, err := m.config.newScope(context.Background(), m.engine)
		m.out.Reset()
		if err != nil {
			m.history = append(m.history, historyEntry{input: input, output: err.Error(), isErr: true})
			return m, nil
		}
		m.scope = scope
		m.history = append(m.history, historyEntry{input: input, output: "Scope reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

// handleAutocomplete completes the name under the cursor against every name
// visible in the session scope.
func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	start := strings.LastIndexAny(input, " \t([") + 1
	word := input[start:]
	if word == "" {
		return m
	}

	var completions []string
	for _, name := range m.scope.Names() {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}

	switch {
	case len(completions) == 1:
		m.textInput.SetValue(input[:start] + completions[0])
		m.textInput.CursorEnd()
	case len(completions) > 1:
		m.history = append(m.history, historyEntry{output: "Completions: " + strings.Join(completions, ", ")})
	}
	return m
}

// evaluate runs input against the session scope and returns everything it
// printed, or the error text.
func (m replModel) evaluate(input string) (string, bool) {
	m.out.Reset()
	_, err := m.engine.EvaluateSource(context.Background(), input, m.scope)
	printed := strings.TrimRight(m.out.String(), "\n")
	m.out.Reset()
	if err != nil {
		if printed != "" {
			return printed + "\n" + err.Error(), true
		}
		return err.Error(), true
	}
	if printed == "" {
		return "void", false
	}
	return printed, false
}

// userBindings lists top-level bindings that are not the untouched library.
func (m replModel) userBindings() []string {
	library := m.engine.Builtins()
	bindings := m.scope.Bindings()
	names := make([]string, 0, len(bindings))
	for name, val := range bindings {
		if lib, ok := library[name]; ok && lib.Equal(val) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s = %s", name, bindings[name].Literal())
	}
	return lines
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("parens REPL") + " " + mutedStyle.Render(m.engine.ConfigSummary()) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	vars := m.userBindings()
	reserved := 8
	if m.showHelp {
		reserved += 10
	}
	if m.showVars {
		reserved += len(vars) + 3
	}
	available := max(m.height-reserved, 1)

	start := 0
	if len(m.history) > available {
		start = len(m.history) - available
	}
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(vars) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(renderFooter(keys.Help, keys.Vars, keys.Clear, keys.Quit))
	return b.String()
}

func renderFooter(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, binding := range bindings {
		help := binding.Help()
		parts[i] = helpKeyStyle.Render(help.Key) + helpDescStyle.Render(" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func renderVarsPanel(lines []string) string {
	if len(lines) == 0 {
		return panelStyle.Render(mutedStyle.Render("No bindings defined"))
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Bindings")
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	rendered := []string{title}
	for _, line := range lines {
		name, rest, _ := strings.Cut(line, " = ")
		rendered = append(rendered, "  "+nameStyle.Render(name)+" = "+rest)
	}
	return panelStyle.Render(strings.Join(rendered, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate input history"},
		{"Tab", "Complete a bound name"},
		{"Enter", "Evaluate the line"},
		{":help", "Toggle this help"},
		{":vars", "Toggle bindings panel"},
		{":clear", "Clear history"},
		{":reset", "Start a fresh scope"},
		{":quit", "Exit REPL"},
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
