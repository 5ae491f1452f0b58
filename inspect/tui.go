// Package inspect renders an already-tokenized source file in a read-only
// scrollable TUI pane, for the -inspect CLI flag. Unlike the teacher's
// debugger TUI this never steps or breaks - there is no VM here, just a
// token stream and the Expression ASTs the classifier folded into it.
package inspect

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/kestrel-asm/gbasm/parser"
)

// TUI is the token/AST viewer: a scrollable token list, a scrollable
// Expression AST pane for the selected token, and a status line, laid out
// the way the teacher's debugger TUI composes tview primitives.
type TUI struct {
	App        *tview.Application
	Pages      *tview.Pages
	MainLayout *tview.Flex

	TokenView  *tview.TextView
	DetailView *tview.TextView
	StatusView *tview.TextView

	tokens   []parser.Token
	selected int
}

// NewTUI builds a TUI over an already-classified token stream.
func NewTUI(tokens []parser.Token) *TUI {
	t := &TUI{
		App:    tview.NewApplication(),
		tokens: tokens,
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.refresh()
	return t
}

func (t *TUI) initializeViews() {
	t.TokenView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.TokenView.SetBorder(true).SetTitle(" Tokens ")

	t.DetailView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.DetailView.SetBorder(true).SetTitle(" Expression AST ")

	t.StatusView = tview.NewTextView().
		SetDynamicColors(true)
	t.StatusView.SetBorder(true).SetTitle(" Status ")
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.TokenView, 0, 2, true).
		AddItem(t.DetailView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, true).
		AddItem(t.StatusView, 3, 0, false)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDown:
			t.move(1)
			return nil
		case tcell.KeyUp:
			t.move(-1)
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		switch event.Rune() {
		case 'q':
			t.App.Stop()
			return nil
		case 'j':
			t.move(1)
			return nil
		case 'k':
			t.move(-1)
			return nil
		}
		return event
	})
}

func (t *TUI) move(delta int) {
	t.selected += delta
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.tokens) {
		t.selected = len(t.tokens) - 1
	}
	t.refresh()
}

func (t *TUI) refresh() {
	var sb strings.Builder
	for i, tok := range t.tokens {
		marker := "  "
		if i == t.selected {
			marker = "->"
		}
		fmt.Fprintf(&sb, "[%s]%s %4d %s[white]\n", rowColor(i == t.selected), marker, i, tok.String())
	}
	t.TokenView.SetText(sb.String())

	t.DetailView.Clear()
	if t.selected >= 0 && t.selected < len(t.tokens) {
		tok := t.tokens[t.selected]
		if tok.Kind == parser.TokenExpression && tok.Expr != nil {
			t.DetailView.SetText(tok.Expr.String())
		} else {
			t.DetailView.SetText("[gray](not an Expression token)[white]")
		}
	}

	t.StatusView.SetText(fmt.Sprintf("token %d/%d  -  arrows/j/k to move, q to quit", t.selected+1, len(t.tokens)))
}

func rowColor(selected bool) string {
	if selected {
		return "yellow"
	}
	return "white"
}

// Run starts the TUI event loop. It blocks until the user quits.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Pages, true).SetFocus(t.TokenView).Run()
}
