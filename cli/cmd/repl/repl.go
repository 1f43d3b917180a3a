package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/fieldvar/lang"
	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/value"
	"github.com/ardnew/fieldvar/variable"
)

// Env is everything the REPL evaluates against.
type Env struct {
	// Vars is the namespace of the loaded model. Names bound with the set
	// command are added to it.
	Vars *variable.Variables
	// IndVars names the coordinate axes in order.
	IndVars []string
	// Locate returns the evaluation context of a physical point.
	Locate func(x []float64) (variable.Point, error)
	// At is the initial probe point.
	At []float64
	// Time is the initial evaluation time, or nil.
	Time *float64
}

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help             Print this cruft
  list             List the names of the model
  at X,Y[,Z]       Move the probe point
  time [T]         Set (or clear) the evaluation time
  set NAME EXPR    Bind NAME to an expression
  clear            Clear screen
  quit             Exit REPL

Usage:
  Type an expression to evaluate it at the probe point
  Completions of names and builtins appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to navigate command history
  Press Ctrl+C on empty line or Ctrl+D to exit`

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// altNav remembers the input state before Alt+Up/Down navigation began.
type altNav struct {
	active bool
	mode   inputMode
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc func() context.Context
	input   textinput.Model
	env     Env
	point   variable.Point
	at      []float64
	logger  log.Logger
	history *History

	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	alt          altNav
	width        int // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	saved        [2]modeInput // input of each mode, indexed by inputMode
}

// modeInput is the input line of a mode while the other mode is active.
type modeInput struct {
	text   string
	cursor int
}

// Run starts the REPL.
func Run(ctx context.Context, env Env, cacheDir string, logger log.Logger) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("names", env.Vars.Len()),
		slog.Any("at", env.At),
	)

	if env.Vars == nil || env.Locate == nil {
		return ErrNoModel
	}

	p, err := env.Locate(env.At)
	if err != nil {
		return err
	}

	p.Time = env.Time

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, env, p, history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	env Env,
	p variable.Point,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		env:        env,
		point:      p,
		at:         env.At,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
		suggIdx:    -1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		if m.mode == modeEval {
			b.WriteString(hintStyle.Render(
				"Type an expression to evaluate at " + m.pointString() +
					" or press Esc for commands"))
		} else {
			b.WriteString(hintStyle.Render(
				"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"))
		}

	case call.inCall && m.mode == modeEval && signatureOf(call.name) != nil:
		b.WriteString(renderSignatureHint(call.name, signatureOf(call.name), call.argIndex))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

// pointString formats the probe point as "(x, y[, z])" with the time, if
// any.
func (m model) pointString() string {
	parts := make([]string, len(m.at))
	for i, c := range m.at {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}

	s := "(" + strings.Join(parts, ", ") + ")"
	if m.point.Time != nil {
		s += " t=" + strconv.FormatFloat(*m.point.Time, 'g', -1, 64)
	}

	return s
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.alt.active = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		m.alt.active = false

		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		if msg.Alt {
			return m.historyCtrl(-1), nil
		}

		return m.historyStep(-1), nil

	case tea.KeyDown:
		if msg.Alt {
			return m.historyCtrl(1), nil
		}

		return m.historyStep(1), nil

	case tea.KeyShiftUp:
		return m.historyInMode(-1), nil

	case tea.KeyShiftDown:
		return m.historyInMode(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		m.alt.active = false

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes:
		// Space breaks out of tab-cycling and keeps the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, ...) edits without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.alt.active = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected candidate by step, wrapping around. The first
// press selects the first (step > 0) or last (step < 0) candidate.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	n := len(m.matches)

	if m.tabActive {
		m.suggIdx = ((m.suggIdx+step)%n + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input. With
// autoConfirm, a sole candidate equal to the typed word is accepted.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.saved = [2]modeInput{}
	m.input.SetValue("")

	_, _ = m.history.Write(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	echo := tea.Println(formatCommand(input))

	result, err := m.evaluate(input)
	if err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl eval result",
			slog.String("result_type", "error"),
			slog.String("error", err.Error()),
		)

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval result",
		slog.Any("shape", result.Shape()),
		slog.Bool("complex", result.IsComplex()),
	)

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(result.String())))
}

// evaluate compiles source against the coordinate axes and evaluates it
// at the probe point.
func (m model) evaluate(source string) (value.Array, error) {
	expr, err := variable.NewExpression(source, m.env.IndVars, false, lang.WithLogger(m.logger))
	if err != nil {
		return value.Array{}, err
	}

	probe := variable.NewProbe(expr)
	probe.SetPoint(m.point)

	return probe.Call()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	echo := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.String("args", rest),
	)

	fail := func(err error) (model, tea.Cmd) {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listNames()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "a", "at":
		x, err := parsePoint(rest)
		if err != nil {
			return fail(err)
		}

		p, err := m.env.Locate(x)
		if err != nil {
			return fail(err)
		}

		p.Time = m.point.Time
		m.point, m.at = p, x

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("probe at "+m.pointString())))

	case "t", "time":
		if rest == "" {
			m.point.Time = nil

			return m, tea.Sequence(echo, tea.Println(hintStyle.Render("time cleared")))
		}

		t, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return fail(ErrInvalidArgument.Wrap(err).With(slog.String("time", rest)))
		}

		m.point.Time = &t

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("probe at "+m.pointString())))

	case "s", "set":
		name, source, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(source) == "" {
			return fail(ErrInvalidArgument.With(slog.String("usage", "set NAME EXPR")))
		}

		source = strings.TrimSpace(source)

		err := m.env.Vars.AddExpression(name, "", m.env.IndVars, source, nil, nil, false, nil)
		if err != nil {
			return fail(err)
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render("✔ "+name+" = "+source)))

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) listNames() string {
	var b strings.Builder

	for name, v := range m.env.Vars.All() {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v.String())))
	}

	return b.String()
}

// parsePoint parses comma- or space-separated coordinates.
func parsePoint(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, ErrInvalidArgument.With(slog.String("usage", "at X,Y[,Z]"))
	}

	x := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, ErrInvalidArgument.Wrap(err).With(slog.String("coordinate", f))
		}

		x[i] = v
	}

	return x, nil
}

// historyStep moves through the whole history, switching mode to that of
// each entry. Stepping past the newest entry clears the input.
func (m model) historyStep(step int) model {
	i := m.historyIdx + step

	if i < 0 {
		return m
	}

	if i >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.historyIdx = i

	return m.show(entry.Line)
}

// historyInMode moves to the nearest entry of the current mode.
func (m model) historyInMode(step int) model {
	if i, ok := m.history.Find(m.historyIdx, step, m.mode); ok {
		m.historyIdx = i
		entry, _ := m.history.Entry(i)

		return m.show(entry.Line)
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// historyCtrl navigates command history from either mode. Running off
// either end restores the mode and input from before navigation began.
func (m model) historyCtrl(step int) model {
	if !m.alt.active {
		m.alt = altNav{
			active: true,
			mode:   m.mode,
			text:   m.input.Value(),
			cursor: m.input.Position(),
		}

		if m.mode != modeCtrl {
			m = m.switchToMode(modeCtrl)
		}
	}

	if i, ok := m.history.Find(m.historyIdx, step, modeCtrl); ok {
		m.historyIdx = i
		entry, _ := m.history.Entry(i)

		return m.show(entry.Line)
	}

	m.alt.active = false
	if m.alt.mode != m.mode {
		m = m.switchToMode(m.alt.mode)
	}

	m.input.SetValue(m.alt.text)
	m.input.SetCursor(m.alt.cursor)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m
}

func (m model) show(line string) model {
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	refreshMatches(&m, false)

	return m
}

// switchToMode switches to mode, saving the input of the current mode and
// restoring that of the new one.
func (m model) switchToMode(mode inputMode) model {
	m.saved[m.mode].text = m.input.Value()
	m.saved[m.mode].cursor = m.input.Position()

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	refreshMatches(&m, false)

	return m
}
