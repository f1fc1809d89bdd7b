package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/sentry-coach/internal/handlers"
	"github.com/jwebster45206/sentry-coach/internal/session"
	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

const PlaceHolderText = "Type your reply, a number 1-3, or /help..."

type languageOption struct {
	label string
	tag   string
}

var languageOptions = []languageOption{
	{label: "English", tag: "en"},
	{label: "繁體中文", tag: "zh-TW"},
}

// ConsoleUI is the BubbleTea model that runs the practice session.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api          *apiClient
	session      *handlers.SessionResponse
	history      []chat.Utterance
	last         *session.TurnResult
	suggestions  []string
	notes        []string
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool
	pending      string

	showLanguageModal bool
	selectedLanguage  int
	creating          bool

	showQuitModal bool

	progressTick int
}

type sessionCreatedMsg struct {
	session *handlers.SessionResponse
	err     error
}

type turnResultMsg struct {
	result *session.TurnResult
	err    error
}

type reportMsg struct {
	report *analysis.Report
	err    error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	childStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	adultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	thoughtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")) // gold

	strikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(api *apiClient) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	return ConsoleUI{
		api:               api,
		textarea:          ta,
		chatViewport:      chatVp,
		metaViewport:      viewport.New(20, 20),
		showLanguageModal: true,
	}
}

func (m ConsoleUI) language() lang.Language {
	if m.session == nil {
		return lang.English
	}
	return m.session.Language
}

func (m ConsoleUI) gameOver() bool {
	return m.last != nil && m.last.Game.Ended
}

// layout sizes the panels: 70% chat, the rest status.
func (m *ConsoleUI) layout() (chatWidth, metaWidth int) {
	chatWidth = int(float64(m.width)*0.7) - 4
	metaWidth = m.width - chatWidth - 6
	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
	return chatWidth, metaWidth
}

// writeChatContent rebuilds the chat viewport for the current width.
func (m *ConsoleUI) writeChatContent() {
	width := m.chatViewport.Width - 6
	if width < 20 {
		width = 20
	}
	t := textFor(m.language())

	var content strings.Builder
	content.WriteString(titleStyle.Render("SENTRY COACH") + "\n\n")
	content.WriteString(wordwrap.String("A child has found a prize pop-up with a link and wants to click it. Help them decide what to do.", width) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, u := range m.history {
		if u.Role == chat.RoleAdult {
			content.WriteString(adultStyle.Render(t.adultName+": ") + wordwrap.String(u.Text, width-6) + "\n\n")
			continue
		}
		content.WriteString(childStyle.Render(t.childName+": ") + wordwrap.String(u.Text, width-8) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar() + "\n\n")
	}
	if m.gameOver() {
		msg := t.lost
		if m.last.Game.EndType == state.OutcomeSuccess {
			msg = t.won
		}
		content.WriteString(titleStyle.Render(wordwrap.String(msg, width)) + "\n\n")
	}
	for _, note := range m.notes {
		content.WriteString(wordwrap.String(note, width) + "\n\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), width)) + "\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) writeStatus() string {
	t := textFor(m.language())
	width := m.metaViewport.Width
	if width < 10 {
		width = 10
	}

	game := state.NewGameState()
	if m.session != nil {
		game = m.session.Game
	}
	if m.last != nil {
		game = m.last.Game
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("STATUS") + "\n\n")
	round := game.Round
	if round > state.MaxRounds {
		round = state.MaxRounds
	}
	content.WriteString(fmt.Sprintf("%s: %d/%d\n", t.round, round, state.MaxRounds))
	content.WriteString(fmt.Sprintf("%s: %s%s\n", t.stars,
		starStyle.Render(strings.Repeat("★", game.Stars)),
		promptStyle.Render(strings.Repeat("☆", state.MaxStars-game.Stars))))
	content.WriteString(fmt.Sprintf("%s: %s%s\n\n", t.strikes,
		strikeStyle.Render(strings.Repeat("✗", game.Strikes)),
		promptStyle.Render(strings.Repeat("·", state.MaxStrikes-game.Strikes))))

	if m.last != nil {
		content.WriteString(fmt.Sprintf("%s: %s\n", t.emotion, m.last.Emotion))
		if m.last.Thought != "" {
			content.WriteString(t.thought + ":\n")
			content.WriteString(thoughtStyle.Render(wordwrap.String("("+m.last.Thought+")", width)) + "\n")
		}
		content.WriteString("\n")
	}

	if len(m.suggestions) > 0 && !m.gameOver() {
		content.WriteString(titleStyle.Render(t.suggestions) + "\n")
		for i, s := range m.suggestions {
			content.WriteString(wordwrap.String(fmt.Sprintf("%d. %s", i+1, s), width) + "\n")
		}
		content.WriteString(promptStyle.Render(wordwrap.String(t.pickHint, width)) + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• /copy  transcript\n")
	content.WriteString("• /report analysis\n")
	content.WriteString("• /new   restart\n")
	content.WriteString("• /quit\n")
	return content.String()
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	m.metaViewport.SetContent(m.writeStatus())
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showLanguageModal {
		return m.updateLanguageModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			if i, ok := suggestionPick(input, len(m.suggestions)); ok {
				input = m.suggestions[i]
			}
			if m.gameOver() {
				m.notes = append(m.notes, promptStyle.Render("The game is over. Type /new to play again."))
				m.refresh()
				return m, nil
			}

			m.err = nil
			m.notes = nil
			m.loading = true
			m.progressTick = 0
			m.pending = input
			m.history = append(m.history, chat.Utterance{Role: chat.RoleAdult, Text: input})
			m.refresh()
			return m, tea.Batch(m.submitTurn(input), progressTick())
		}

	case turnResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			// drop the optimistic adult line; the server did not keep it
			if n := len(m.history); n > 0 && m.history[n-1].Role == chat.RoleAdult && m.history[n-1].Text == m.pending {
				m.history = m.history[:n-1]
			}
		} else {
			m.last = msg.result
			m.suggestions = msg.result.Suggestions
			m.history = append(m.history, chat.Utterance{Role: chat.RoleKid, Text: msg.result.ChildReply, Turn: msg.result.Round})
		}
		m.pending = ""
		m.refresh()
		return m, nil

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.notes = append(m.notes, formatReport(msg.report))
		}
		m.refresh()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/help":
		m.notes = append(m.notes, titleStyle.Render("Help:")+`
• Type a reply to the child and press Enter
• Type 1, 2 or 3 to send one of the suggestions
• /copy   copy the transcript to the clipboard
• /report show the intervention analysis
• /new    start a new session
• /quit   exit`)

	case "/copy":
		if err := clipboard.WriteAll(formatTranscript(m.history, m.language())); err != nil {
			m.err = fmt.Errorf("copy failed: %w", err)
		} else {
			m.notes = append(m.notes, promptStyle.Render("Transcript copied to clipboard."))
		}

	case "/report":
		if m.session == nil {
			return m, nil
		}
		m.refresh()
		return m, m.fetchReport()

	case "/new":
		return m.restart()

	case "/quit", "/exit":
		m.showQuitModal = true
		return m, nil

	default:
		m.notes = append(m.notes, errorStyle.Render("Unknown command "+input+". Type /help."))
	}

	m.refresh()
	return m, nil
}

// restart drops the current session on the server and reopens the language picker.
func (m ConsoleUI) restart() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.session != nil {
		api, id := m.api, m.session.SessionID
		cmd = func() tea.Msg {
			_ = api.deleteSession(id)
			return nil
		}
	}
	m.session = nil
	m.last = nil
	m.history = nil
	m.suggestions = nil
	m.notes = nil
	m.err = nil
	m.showLanguageModal = true
	return m, cmd
}

func (m ConsoleUI) submitTurn(message string) tea.Cmd {
	api, id := m.api, m.session.SessionID
	return func() tea.Msg {
		res, err := api.submitTurn(id, message)
		return turnResultMsg{res, err}
	}
}

func (m ConsoleUI) fetchReport() tea.Cmd {
	api, id := m.api, m.session.SessionID
	return func() tea.Msg {
		r, err := api.getAnalysis(id)
		return reportMsg{r, err}
	}
}

func (m ConsoleUI) createSession(tag string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		s, err := api.createSession(tag)
		return sessionCreatedMsg{s, err}
	}
}

func (m ConsoleUI) updateLanguageModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case sessionCreatedMsg:
		m.creating = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.session = msg.session
		m.history = append([]chat.Utterance(nil), msg.session.History...)
		m.suggestions = msg.session.Suggestions
		m.showLanguageModal = false
		if m.width > 0 && m.height > 0 {
			m.layout()
		}
		m.ready = true
		m.refresh()
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.creating {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
		case tea.KeyUp:
			if m.selectedLanguage > 0 {
				m.selectedLanguage--
			}
		case tea.KeyDown:
			if m.selectedLanguage < len(languageOptions)-1 {
				m.selectedLanguage++
			}
		case tea.KeyEnter:
			m.creating = true
			m.err = nil
			return m, m.createSession(languageOptions[m.selectedLanguage].tag)
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		}
		switch msg.String() {
		case "y", "Y":
			return m, tea.Quit
		case "n", "N":
			m.showQuitModal = false
			if m.showLanguageModal {
				return m, nil
			}
			m.textarea.Focus()
			return m, textarea.Blink
		}
	}
	return m, nil
}

func (m ConsoleUI) renderModal(body string, width int) string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	modal := modalStyle.Width(width).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to end this practice session?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))
	return m.renderModal(content.String(), 50)
}

func (m ConsoleUI) renderLanguageModal() string {
	var content strings.Builder
	switch {
	case m.creating:
		content.WriteString(modalTitleStyle.Render("Starting session..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The child is opening a message..."))
	default:
		content.WriteString(modalTitleStyle.Render("Choose a language / 選擇語言"))
		content.WriteString("\n\n")
		for i, opt := range languageOptions {
			if i == m.selectedLanguage {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + opt.label))
			} else {
				content.WriteString(modalItemStyle.Render("  " + opt.label))
			}
			content.WriteString("\n")
		}
		if m.err != nil {
			content.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to exit"))
	}
	return m.renderModal(content.String(), 56)
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showLanguageModal {
		return m.renderLanguageModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar draws the animated bar shown while the child is replying.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable > 60 {
		usable = 60
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
