package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultAPIURL = "http://localhost:5000"
	maxTweetChars = 280
	historyLimit  = 20
)

var examplePrompts = []string{
	"A motivational message about consistency",
	"Hot take on remote work culture",
	"Tech industry observation",
	"Life advice that sounds controversial but is true",
	"Startup wisdom for founders",
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	tweetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Width(60)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepComposing step = iota
	stepGenerating
	stepResult
	stepHistory
)

type model struct {
	api *apiClient

	step         step
	currentInput string
	topic        string
	result       string
	resultID     string
	history      []tweetItem
	cursor       int
	exampleIdx   int
	message      string
	quitting     bool
}

type generatedMsg struct {
	tweet string
	id    string
}
type historyMsg []tweetItem
type deletedMsg struct{ id string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api *apiClient) model {
	return model{
		api:        api,
		step:       stepComposing,
		exampleIdx: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func generateTweet(api *apiClient, topic string) tea.Cmd {
	return func() tea.Msg {
		env, err := api.generate(context.Background(), topic)
		if err != nil {
			return errMsg{err}
		}
		return generatedMsg{tweet: env.Tweet, id: env.ID}
	}
}

func loadHistory(api *apiClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		tweets, err := api.history(ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(tweets)
	}
}

func deleteTweet(api *apiClient, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.remove(ctx, id); err != nil {
			return errMsg{err}
		}
		return deletedMsg{id: id}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case stepComposing:
			return m.updateComposing(msg)
		case stepResult:
			return m.updateResult(msg)
		case stepHistory:
			return m.updateHistory(msg)
		}

	case generatedMsg:
		m.result = msg.tweet
		m.resultID = msg.id
		m.step = stepResult
		m.message = successStyle.Render("✓ Tweet generated")

	case historyMsg:
		m.history = []tweetItem(msg)
		if m.cursor >= len(m.history) {
			m.cursor = max(len(m.history)-1, 0)
		}
		m.step = stepHistory

	case deletedMsg:
		if msg.id == m.resultID {
			m.resultID = ""
		}
		m.message = successStyle.Render("✓ Tweet deleted")
		return m, loadHistory(m.api)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		if m.step == stepGenerating {
			m.step = stepComposing
			m.currentInput = m.topic
		}
	}

	return m, nil
}

func (m model) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		topic := strings.TrimSpace(m.currentInput)
		if topic == "" {
			m.message = errorStyle.Render("✗ Tell us what you want to tweet about")
			return m, nil
		}
		m.topic = topic
		m.step = stepGenerating
		m.message = "Crafting your viral tweet..."
		return m, generateTweet(m.api, topic)

	case tea.KeyTab:
		m.exampleIdx = (m.exampleIdx + 1) % len(examplePrompts)
		m.currentInput = examplePrompts[m.exampleIdx]

	case tea.KeyCtrlT:
		m.message = ""
		return m, loadHistory(m.api)

	case tea.KeyBackspace:
		if len(m.currentInput) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.currentInput)
			m.currentInput = m.currentInput[:len(m.currentInput)-size]
		}

	case tea.KeyRunes, tea.KeySpace:
		m.currentInput += string(msg.Runes)
	}
	return m, nil
}

func (m model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.step = stepGenerating
		m.message = "Crafting your viral tweet..."
		return m, generateTweet(m.api, m.topic)
	case "n":
		m.step = stepComposing
		m.currentInput = ""
		m.message = ""
	case "h":
		m.message = ""
		return m, loadHistory(m.api)
	}
	return m, nil
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.history)-1 {
			m.cursor++
		}
	case "d", "delete":
		if len(m.history) > 0 {
			return m, deleteTweet(m.api, m.history[m.cursor].ID)
		}
	case "enter":
		if len(m.history) > 0 {
			picked := m.history[m.cursor]
			m.topic = picked.Topic
			m.result = picked.Content
			m.resultID = picked.ID
			m.step = stepResult
			m.message = ""
		}
	case "esc", "b":
		m.step = stepComposing
		m.message = ""
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func charCounter(text string) string {
	n := utf8.RuneCountInString(text)
	counter := fmt.Sprintf("%d/%d", n, maxTweetChars)
	if n > maxTweetChars {
		return errorStyle.Render(counter)
	}
	return mutedStyle.Render(counter)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("✨ TweetForge\n\n"))

	switch m.step {
	case stepComposing:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("What do you want to tweet about?\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\n")
		s.WriteString(mutedStyle.Render("Enter to generate, Tab for an example, Ctrl+T for history, Esc to quit"))
		s.WriteString("\n")

	case stepGenerating:
		s.WriteString(m.message + "\n")

	case stepResult:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(tweetStyle.Render(m.result))
		s.WriteString("\n" + charCounter(m.result) + "\n\n")
		s.WriteString(mutedStyle.Render("r regenerate, n new topic, h history, Enter to print and quit"))
		s.WriteString("\n")

	case stepHistory:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Recent tweets:\n\n"))
		if len(m.history) == 0 {
			s.WriteString(normalStyle.Render("No tweets yet") + "\n")
		}
		for i, tw := range m.history {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n", cursor, style.Render(truncate(tw.Content, 60)), mutedStyle.Render(tw.CreatedAt.Local().Format("Jan 2 15:04"))))
		}
		s.WriteString("\n" + mutedStyle.Render("↑/↓ move, Enter open, d delete, Esc back, q quit") + "\n")
	}

	return s.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func main() {
	baseURL := os.Getenv("TWEET_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	p := tea.NewProgram(initialModel(newAPIClient(strings.TrimRight(baseURL, "/"))))
	final, err := p.Run()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	// No clipboard in a terminal; print the tweet so it can be piped.
	if m, ok := final.(model); ok && m.result != "" {
		fmt.Println(m.result)
	}
}
