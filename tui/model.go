// Package tui is an interactive terminal front end for building a
// piecewise solution: pick a piece kind, type its parameters, add it and
// watch the list, legend and analysis update.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/gogpu/odeglue"
	"github.com/gogpu/odeglue/analysis"
	"github.com/gogpu/odeglue/plot"
)

var kinds = []odeglue.Kind{
	odeglue.KindZero,
	odeglue.KindPositive,
	odeglue.KindNegative,
	odeglue.KindPoint,
}

// field describes one parameter input of a kind.
type field struct {
	name     string
	optional bool
}

func fieldsOf(k odeglue.Kind) [2]field {
	switch k {
	case odeglue.KindPositive, odeglue.KindNegative:
		return [2]field{{name: "x0"}, {name: "limit", optional: true}}
	case odeglue.KindPoint:
		return [2]field{{name: "x"}, {name: "y"}}
	default:
		return [2]field{{name: "a"}, {name: "b"}}
	}
}

// savedMsg reports the outcome of writing the plot.
type savedMsg struct {
	path string
	err  error
}

// Option configures a Model.
type Option func(*Model)

// WithOutput sets the PNG path written by the w key and after every
// change of the catalog.
func WithOutput(path string) Option {
	return func(m *Model) { m.out = path }
}

// WithEvaluator sets the evaluator used for plots and analysis.
func WithEvaluator(ev *odeglue.Evaluator) Option {
	return func(m *Model) {
		if ev != nil {
			m.ev = ev
		}
	}
}

// WithPlotOptions sets the options the PNG is rendered with.
func WithPlotOptions(opts ...plot.Option) Option {
	return func(m *Model) { m.plotOpts = append(m.plotOpts, opts...) }
}

// WithCatalog starts from an existing catalog, which the model then owns.
func WithCatalog(c *odeglue.Catalog) Option {
	return func(m *Model) {
		if c != nil {
			m.catalog = c
		}
	}
}

// Model is the bubbletea model of the piece builder.
type Model struct {
	catalog  *odeglue.Catalog
	ev       *odeglue.Evaluator
	plotOpts []plot.Option
	out      string

	kind   int
	focus  int
	inputs [2]textinput.Model

	keys   keyMap
	help   help.Model
	styles styles

	status    string
	statusErr bool

	list   string
	legend []plot.LegendEntry
	report analysis.Report
}

// New creates a model whose catalog describes pieces in lang.
func New(lang language.Tag, opts ...Option) Model {
	m := Model{
		catalog: odeglue.NewCatalog(lang),
		ev:      odeglue.NewEvaluator(),
		keys:    defaultKeys(),
		help:    help.New(),
		styles:  defaultStyles(),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 16
		m.inputs[i] = ti
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setKind(0)
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is done. It returns the final catalog.
func Run(ctx context.Context, m Model) (*odeglue.Catalog, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m.catalog, err
	}
	if fm, ok := final.(Model); ok {
		return fm.catalog, nil
	}
	return m.catalog, nil
}

// Catalog returns the catalog the model edits.
func (m Model) Catalog() *odeglue.Catalog { return m.catalog }

// Kind returns the piece kind currently selected.
func (m Model) Kind() odeglue.Kind { return kinds[m.kind] }

// Status returns the last status line and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Report returns the analysis of the current catalog.
func (m Model) Report() analysis.Report { return m.report }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) setKind(i int) {
	m.kind = i % len(kinds)
	fs := fieldsOf(kinds[m.kind])
	for j := range m.inputs {
		m.inputs[j].Reset()
		m.inputs[j].Placeholder = fs[j].name
		if fs[j].optional {
			m.inputs[j].Placeholder += " (optional)"
		}
	}
	m.setFocus(0)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// refresh re-derives list, legend and analysis from the whole catalog.
func (m *Model) refresh() {
	pieces := m.catalog.List()
	traces := m.ev.EvaluateAll(pieces)

	var sb strings.Builder
	if err := plot.WriteList(&sb, pieces, m.catalog.Language()); err != nil {
		odeglue.Logger().Warn("tui: writing list", "err", err)
	}
	m.list = sb.String()
	m.legend = plot.Legend(traces)
	m.report = analysis.Check(pieces, analysis.WithEvaluator(m.ev))
}

// save returns a command writing the PNG, or nil without an output path.
func (m Model) save() tea.Cmd {
	if m.out == "" {
		return nil
	}
	path := m.out
	traces := m.ev.EvaluateAll(m.catalog.List())
	p := plot.New(m.plotOpts...)
	return func() tea.Msg {
		return savedMsg{path: path, err: p.SavePNG(path, traces)}
	}
}

func (m *Model) setStatus(err error, format string, args ...any) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

// parseArgs reads the parameter fields of the current kind.
func (m Model) parseArgs() ([]float64, error) {
	fs := fieldsOf(m.Kind())
	var args []float64
	for i, f := range fs {
		s := strings.TrimSpace(m.inputs[i].Value())
		if s == "" {
			if f.optional {
				continue
			}
			return nil, fmt.Errorf("%s: %w", f.name, odeglue.ErrMissingField)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %q", f.name, s)
		}
		args = append(args, v)
	}
	return args, nil
}

func (m Model) add() (Model, tea.Cmd) {
	args, err := m.parseArgs()
	if err != nil {
		m.setStatus(err, "")
		return m, nil
	}
	p, err := m.catalog.Toolbox().Build(m.Kind(), args...)
	if err != nil {
		m.setStatus(err, "")
		return m, nil
	}
	m.catalog.Append(p)
	m.refresh()
	m.setStatus(nil, "added %s", p.DisplayLabel())
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(0)
	return m, m.save()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setStatus(msg.err, "")
		} else {
			m.setStatus(nil, "wrote %s", msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Kind):
			m.setKind(m.kind + 1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Add):
			return m.add()
		case key.Matches(msg, m.keys.Clear):
			m.catalog.Clear()
			m.refresh()
			m.setStatus(nil, "cleared")
			return m, m.save()
		case key.Matches(msg, m.keys.Write):
			if m.out == "" {
				m.setStatus(errors.New("no output path"), "")
				return m, nil
			}
			return m, m.save()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.title.Render("x·y' = 2y − 6x⁴√y,  y(0) = 0"))
	b.WriteString("\n\n")

	tabs := make([]string, len(kinds))
	for i, k := range kinds {
		if i == m.kind {
			tabs[i] = st.tabActive.Render(k.String())
		} else {
			tabs[i] = st.tab.Render(k.String())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	fs := fieldsOf(m.Kind())
	var form strings.Builder
	for i := range m.inputs {
		form.WriteString(st.label.Render(fs[i].name))
		form.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			form.WriteString("\n")
		}
	}
	b.WriteString(st.panel.Render(form.String()))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(st.warn.Render(m.status))
		} else {
			b.WriteString(st.ok.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(st.panel.Render(strings.TrimRight(m.list, "\n")))
	b.WriteString("\n")

	if len(m.legend) > 0 {
		var lg strings.Builder
		for i, e := range m.legend {
			mark := "──"
			if e.Marker {
				mark = "●"
			}
			sw := lipgloss.NewStyle().Foreground(lipgloss.Color(odeglue.HexColor(e.Color)))
			lg.WriteString(sw.Render(mark) + " " + e.Label)
			if i < len(m.legend)-1 {
				lg.WriteString("\n")
			}
		}
		b.WriteString(st.panel.Render(lg.String()))
		b.WriteString("\n")
	}

	b.WriteString(st.dim.Render(strings.TrimRight(m.report.Summary(), "\n")))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
