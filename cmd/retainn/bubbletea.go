package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/markdown"
)

/*
 * All BubbleTea-related code is present in this file to make easy to switch to another library someday.
 */

var (
	deckTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).MarginLeft(2)
	scoreStyle     = lipgloss.NewStyle().Faint(true)
	sideStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 2).MarginLeft(2)
	helpStyle      = lipgloss.NewStyle().PaddingLeft(4).PaddingBottom(1)
	quitTextStyle  = lipgloss.NewStyle().Margin(1, 0, 2, 4)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Margin(1, 0, 2, 4)
)

// ReviewInteractive runs a session in the terminal until no card remains or the user quits.
func ReviewInteractive(reviewer Reviewer) error {
	res, err := tea.NewProgram(NewReviewModel(reviewer)).Run()
	if err != nil {
		return err
	}
	return res.(ReviewModel).err
}

type reviewKeyMap struct {
	Reveal key.Binding
	Recall key.Binding
	Forget key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Recall, k.Forget, k.Skip, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Reveal: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "show answer")),
		Recall: key.NewBinding(key.WithKeys("r", "y"), key.WithHelp("r", "recall")),
		Forget: key.NewBinding(key.WithKeys("f", "n"), key.WithHelp("f", "forget")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type ReviewModel struct {
	reviewer Reviewer
	card     *core.Card
	revealed bool
	err      error
	quitting bool

	keys reviewKeyMap
	help help.Model
}

func NewReviewModel(reviewer Reviewer) ReviewModel {
	m := ReviewModel{
		reviewer: reviewer,
		keys:     newReviewKeyMap(),
		help:     help.New(),
	}
	m.advance()
	return m
}

// advance moves to the next card and hides its back.
func (m *ReviewModel) advance() {
	m.card, m.err = m.reviewer.Next()
	m.revealed = false
	m.keys.Reveal.SetEnabled(true)
	m.keys.Recall.SetEnabled(false)
	m.keys.Forget.SetEnabled(false)
}

func (m *ReviewModel) reveal() {
	m.revealed = true
	m.keys.Reveal.SetEnabled(false)
	m.keys.Recall.SetEnabled(true)
	m.keys.Forget.SetEnabled(true)
}

func (m ReviewModel) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return nil
}

// done returns if there is nothing left to show.
func (m ReviewModel) done() bool {
	return m.err != nil || m.card == nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case m.done():
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reveal):
			m.reveal()
		case key.Matches(msg, m.keys.Recall):
			return m.answer(core.AnswerRecall)
		case key.Matches(msg, m.keys.Forget):
			return m.answer(core.AnswerForget)
		case key.Matches(msg, m.keys.Skip):
			return m.answer(core.AnswerSkip)
		}
	}
	return m, nil
}

func (m ReviewModel) answer(answer core.Answer) (tea.Model, tea.Cmd) {
	if err := m.reviewer.Answer(m.card, answer); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.advance()
	if m.done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m ReviewModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.quitting || m.card == nil {
		return quitTextStyle.Render(fmt.Sprintf("%d card(s) reviewed. See you soon!", m.reviewer.Reviewed()))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(deckTitleStyle.Render(m.card.DeckTitle))
	sb.WriteString(" ")
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("(score: %d)", m.card.Score)))
	sb.WriteString("\n\n")
	sb.WriteString(sideStyle.Render(markdown.ToText(m.card.Front)))
	sb.WriteString("\n")
	if m.revealed {
		sb.WriteString(sideStyle.Render(markdown.ToText(m.card.Back)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return sb.String()
}
