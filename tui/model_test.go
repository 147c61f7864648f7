package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/gogpu/odeglue"
	"github.com/gogpu/odeglue/plot"
)

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// typeInto types s into the focused field one rune at a time.
func typeInto(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func TestCycleKinds(t *testing.T) {
	m := New(language.English)
	want := []odeglue.Kind{odeglue.KindPositive, odeglue.KindNegative, odeglue.KindPoint, odeglue.KindZero}
	if m.Kind() != odeglue.KindZero {
		t.Fatalf("initial kind = %v", m.Kind())
	}
	for _, k := range want {
		m, _ = send(t, m, tab)
		if m.Kind() != k {
			t.Errorf("kind = %v, want %v", m.Kind(), k)
		}
	}
}

func TestAddZeroSegment(t *testing.T) {
	m := New(language.English)
	msgs := typeInto("-1")
	msgs = append(msgs, down)
	msgs = append(msgs, typeInto("1")...)
	msgs = append(msgs, enter)
	m, _ = send(t, m, msgs...)

	if n := m.Catalog().Len(); n != 1 {
		status, _ := m.Status()
		t.Fatalf("catalog has %d pieces, want 1 (status %q)", n, status)
	}
	got := m.Catalog().List()[0]
	if q, ok := got.Params.(odeglue.ZeroSegment); !ok || q.A != -1 || q.B != 1 {
		t.Errorf("piece = %v", got)
	}
	if !strings.Contains(m.View(), "y=0 on [-1, 1]") {
		t.Error("list not shown in view")
	}
	if status, isErr := m.Status(); isErr || !strings.HasPrefix(status, "added") {
		t.Errorf("status = %q (err %v)", status, isErr)
	}
}

func TestAddPositiveBranchOptionalLimit(t *testing.T) {
	m := New(language.English)
	msgs := []tea.Msg{tab}
	msgs = append(msgs, typeInto("1")...)
	msgs = append(msgs, enter)
	m, _ = send(t, m, msgs...)

	pieces := m.Catalog().List()
	if len(pieces) != 1 {
		t.Fatalf("catalog has %d pieces", len(pieces))
	}
	if q, ok := pieces[0].Params.(odeglue.PositiveBranch); !ok || q.X0 != 1 || q.Limit != 0 {
		t.Errorf("piece = %v", pieces[0])
	}
	if m.Report().Pieces[0].Valid {
		t.Error("branch on [1, 2] reported valid")
	}
}

func TestRejectedInput(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want error
	}{
		{"missing", []tea.Msg{enter}, odeglue.ErrMissingField},
		{"zero x0", append(append([]tea.Msg{tab}, typeInto("0")...), enter), odeglue.ErrNonPositiveX0},
		{"wrong sign", append(append([]tea.Msg{tab, tab}, typeInto("2")...), enter), odeglue.ErrNonNegativeX0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := send(t, New(language.English), tt.msgs...)
			if m.Catalog().Len() != 0 {
				t.Errorf("catalog changed: %v", m.Catalog().List())
			}
			status, isErr := m.Status()
			if !isErr || !strings.Contains(status, tt.want.Error()) {
				t.Errorf("status = %q (err %v), want %q", status, isErr, tt.want)
			}
		})
	}
}

func TestNotANumber(t *testing.T) {
	m, _ := send(t, New(language.English), append(typeInto("1x"), enter)...)
	if status, isErr := m.Status(); !isErr || !strings.Contains(status, "not a number") {
		t.Errorf("status = %q", status)
	}
}

func TestClear(t *testing.T) {
	c := odeglue.NewCatalog(language.English)
	c.Append(must(odeglue.NewZeroSegment(-1, 1)))
	m := New(language.English, WithCatalog(c))

	m, cmd := send(t, m, runes("c"))
	if c.Len() != 0 {
		t.Errorf("catalog has %d pieces after clear", c.Len())
	}
	if cmd != nil {
		t.Error("clear without output path produced a command")
	}
	if !strings.Contains(m.View(), odeglue.TextsFor(language.English).EmptyPrompt) {
		t.Error("empty prompt not shown after clear")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	m := New(language.English, WithOutput(path), WithPlotOptions(plot.WithSize(120, 80)))

	m, cmd := send(t, m, append(typeInto("-2"), down, runes("2"), enter)...)
	if cmd == nil {
		t.Fatal("adding a piece with an output path returned no command")
	}
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("save = %#v", msg)
	}
	m, _ = send(t, m, saved)
	if status, isErr := m.Status(); isErr || !strings.Contains(status, path) {
		t.Errorf("status = %q", status)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("plot not written: %v", err)
	}

	if _, cmd := send(t, m, runes("w")); cmd == nil {
		t.Error("w key returned no command")
	}
}

func TestWriteWithoutOutput(t *testing.T) {
	m, cmd := send(t, New(language.English), runes("w"))
	if cmd != nil {
		t.Error("w without output path returned a command")
	}
	if _, isErr := m.Status(); !isErr {
		t.Error("expected an error status")
	}
}

func TestSaveError(t *testing.T) {
	m, _ := send(t, New(language.English), savedMsg{path: "x.png", err: errors.New("disk full")})
	if status, isErr := m.Status(); !isErr || status != "disk full" {
		t.Errorf("status = %q (err %v)", status, isErr)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := send(t, New(language.English), runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestHebrewList(t *testing.T) {
	m := New(language.Hebrew)
	if !strings.Contains(m.View(), odeglue.TextsFor(language.Hebrew).EmptyPrompt) {
		t.Error("Hebrew prompt missing")
	}
}

func must(p odeglue.Piece, err error) odeglue.Piece {
	if err != nil {
		panic(err)
	}
	return p
}
