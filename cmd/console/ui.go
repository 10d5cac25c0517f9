package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/internal/handlers"
	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
	"github.com/jwebster45206/chronicle/pkg/session"
)

const (
	AppTitle = "CHRONICLE"

	maxKeyPhrases   = 6
	maxRelatedLinks = 4
)

type focusArea int

const (
	focusEras focusArea = iota
	focusRegions
)

// ConsoleUI is the BubbleTea model that runs the explorer.
// https://github.com/charmbracelet/bubbletea
//
// All explorer state lives in the API session; the model only keeps the
// cursor positions and what it has fetched.
type ConsoleUI struct {
	config  *config.Config
	client  *http.Client
	logger  *slog.Logger
	player  *narration.Player
	session *session.Session

	eras       []handlers.EraSummary
	world      *era.World
	analyses   map[string]*handlers.AnalysisResponse
	narrations map[string]*handlers.NarrationResponse

	focus        focusArea
	eraCursor    int
	regionCursor int

	detailViewport viewport.Model
	renderer       *glamour.TermRenderer
	rendererWidth  int
	ready          bool
	width          int
	height         int
	err            error
	status         string

	showQuitModal bool
}

type erasLoadedMsg struct {
	eras []handlers.EraSummary
	err  error
}

type worldLoadedMsg struct {
	world *era.World
	err   error
}

type sessionUpdatedMsg struct {
	session *session.Session
	err     error
}

type analysisLoadedMsg struct {
	eraID    string
	regionID string
	analysis *handlers.AnalysisResponse
	err      error
}

type narrationLoadedMsg struct {
	eraID     string
	regionID  string
	narration *handlers.NarrationResponse
	err       error
}

type narrationEndedMsg struct {
	key string
}

type clipboardMsg struct {
	err error
}

var (
	listPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(1)

	detailPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingLeft(1).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	entityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Underline(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	activeItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

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
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *config.Config, client *http.Client, logger *slog.Logger, player *narration.Player, s *session.Session) ConsoleUI {
	detailVp := viewport.New(60, 20)
	detailVp.MouseWheelEnabled = true

	return ConsoleUI{
		config:         cfg,
		client:         client,
		logger:         logger,
		player:         player,
		session:        s,
		analyses:       make(map[string]*handlers.AnalysisResponse),
		narrations:     make(map[string]*handlers.NarrationResponse),
		detailViewport: detailVp,
	}
}

// regionKey identifies a region across eras. Region IDs are only unique
// within their era.
func regionKey(eraID, regionID string) string {
	return eraID + "/" + regionID
}

// regionMarkers summarises a region's session state for the region list:
// expanded or collapsed, then A when its analysis is open and ♪ while it
// is being narrated.
func regionMarkers(s *session.Session, regionID string) string {
	var b strings.Builder
	if s.ExpandedRegionID == regionID {
		b.WriteString("▾")
	} else {
		b.WriteString("▸")
	}
	if s.AnalysisVisible(regionID) {
		b.WriteString("A")
	} else {
		b.WriteString(" ")
	}
	if s.NarratingRegionID == regionID {
		b.WriteString("♪")
	} else {
		b.WriteString(" ")
	}
	return b.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.loadEras(), m.loadWorld(m.session.SelectedEraID))
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeDetailContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case erasLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eras = msg.eras
		m.eraCursor = m.eraIndex(m.session.SelectedEraID)

	case worldLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.world.ID != m.session.SelectedEraID {
			return m, nil // a later select_era superseded this load
		}
		m.world = msg.world
		if m.regionCursor >= len(m.world.Regions) {
			m.regionCursor = 0
		}
		m.writeDetailContent()
		m.detailViewport.GotoTop()

	case sessionUpdatedMsg:
		return m.applySession(msg)

	case analysisLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.analyses[regionKey(msg.eraID, msg.regionID)] = msg.analysis
		m.writeDetailContent()

	case narrationLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.narrations[regionKey(msg.eraID, msg.regionID)] = msg.narration
		m.writeDetailContent()
		return m, m.syncPlayer()

	case narrationEndedMsg:
		// Speech that finishes on its own ends the narration in the session too.
		if id := m.session.NarratingRegionID; id != "" &&
			regionKey(m.session.SelectedEraID, id) == msg.key &&
			m.player != nil && m.player.Active() == "" {
			return m, m.sendAction(session.Action{Type: session.ActionStopNarration})
		}

	case clipboardMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to copy narration: %w", msg.err)
		} else {
			m.status = "Narration copied to clipboard"
		}
	}

	return m, nil
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	case tea.KeyTab:
		if m.focus == focusEras {
			m.focus = focusRegions
		} else {
			m.focus = focusEras
		}
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch msg.String() {
	case "q":
		m.showQuitModal = true
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		if m.focus == focusEras {
			if m.eraCursor < len(m.eras) && m.eras[m.eraCursor].ID != m.session.SelectedEraID {
				return m, m.sendAction(session.Action{Type: session.ActionSelectEra, EraID: m.eras[m.eraCursor].ID})
			}
			m.focus = focusRegions
			return m, nil
		}
		return m, m.regionAction(session.ActionToggleRegion)
	case "a":
		return m, m.regionAction(session.ActionToggleAnalysis)
	case "n":
		return m, m.regionAction(session.ActionToggleNarration)
	case "s":
		if m.session.NarratingRegionID != "" {
			return m, m.sendAction(session.Action{Type: session.ActionStopNarration})
		}
	case "c":
		return m.copyNarration()
	}
	return m, nil
}

func (m *ConsoleUI) moveCursor(delta int) {
	if m.focus == focusEras {
		m.eraCursor = clamp(m.eraCursor+delta, len(m.eras))
		return
	}
	if m.world != nil {
		m.regionCursor = clamp(m.regionCursor+delta, len(m.world.Regions))
		m.writeDetailContent()
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// regionAction applies t to the region under the cursor.
func (m ConsoleUI) regionAction(t session.ActionType) tea.Cmd {
	if m.world == nil || m.regionCursor >= len(m.world.Regions) {
		return nil
	}
	return m.sendAction(session.Action{Type: t, RegionID: m.world.Regions[m.regionCursor].ID})
}

func (m ConsoleUI) applySession(msg sessionUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	prev := m.session
	m.session = msg.session
	m.err = nil

	var cmds []tea.Cmd
	if prev.SelectedEraID != m.session.SelectedEraID {
		m.world = nil
		m.regionCursor = 0
		m.focus = focusRegions
		cmds = append(cmds, m.loadWorld(m.session.SelectedEraID))
	}

	// A stopped narration is generated afresh the next time it starts.
	if prev.NarratingRegionID != "" && (prev.NarratingRegionID != m.session.NarratingRegionID || prev.SelectedEraID != m.session.SelectedEraID) {
		delete(m.narrations, regionKey(prev.SelectedEraID, prev.NarratingRegionID))
	}

	eraID := m.session.SelectedEraID
	if id := m.session.AnalysisRegionID; id != "" && m.analyses[regionKey(eraID, id)] == nil {
		cmds = append(cmds, m.loadAnalysis(eraID, id))
	}
	if id := m.session.NarratingRegionID; id != "" && m.narrations[regionKey(eraID, id)] == nil {
		cmds = append(cmds, m.loadNarration(eraID, id))
	}
	cmds = append(cmds, m.syncPlayer())

	m.writeDetailContent()
	return m, tea.Batch(cmds...)
}

// syncPlayer makes playback follow the session: the narrating region is
// voiced once its text has loaded, and nothing plays otherwise.
func (m ConsoleUI) syncPlayer() tea.Cmd {
	if m.player == nil {
		return nil
	}
	id := m.session.NarratingRegionID
	if id == "" {
		m.player.Stop()
		return nil
	}
	key := regionKey(m.session.SelectedEraID, id)
	narr := m.narrations[key]
	if narr == nil || m.player.Active() == key {
		return nil
	}
	m.player.Play(key, narr.Text)

	player := m.player
	return func() tea.Msg {
		player.Wait()
		return narrationEndedMsg{key: key}
	}
}

func (m ConsoleUI) copyNarration() (tea.Model, tea.Cmd) {
	id := m.session.NarratingRegionID
	if id == "" {
		m.status = "Press n on a region to narrate it first"
		return m, nil
	}
	narr := m.narrations[regionKey(m.session.SelectedEraID, id)]
	if narr == nil {
		m.status = "Narration is still loading"
		return m, nil
	}
	text := narr.Text
	return m, func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}

func (m ConsoleUI) sendAction(action session.Action) tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.session.ID
	m.logger.Debug("Sending session action", "id", id.String(), "type", action.Type, "era_id", action.EraID, "region_id", action.RegionID)
	return func() tea.Msg {
		s, err := applyAction(client, baseURL, id, action)
		return sessionUpdatedMsg{s, err}
	}
}

func (m ConsoleUI) loadEras() tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		eras, err := listEras(client, baseURL)
		return erasLoadedMsg{eras, err}
	}
}

func (m ConsoleUI) loadWorld(eraID string) tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		world, err := getWorld(client, baseURL, eraID)
		return worldLoadedMsg{world, err}
	}
}

func (m ConsoleUI) loadAnalysis(eraID, regionID string) tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		res, err := getAnalysis(client, baseURL, eraID, regionID)
		return analysisLoadedMsg{eraID, regionID, res, err}
	}
}

func (m ConsoleUI) loadNarration(eraID, regionID string) tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		res, err := getNarration(client, baseURL, eraID, regionID)
		return narrationLoadedMsg{eraID, regionID, res, err}
	}
}

func (m ConsoleUI) eraIndex(eraID string) int {
	for i, e := range m.eras {
		if e.ID == eraID {
			return i
		}
	}
	return 0
}

func (m ConsoleUI) findRegion(regionID string) *era.Region {
	if m.world == nil || regionID == "" {
		return nil
	}
	for i := range m.world.Regions {
		if m.world.Regions[i].ID == regionID {
			return &m.world.Regions[i]
		}
	}
	return nil
}

func (m ConsoleUI) panelWidths() (int, int) {
	listWidth := m.width * 30 / 100
	if listWidth < 28 {
		listWidth = 28
	}
	return listWidth, m.width - listWidth - 2
}

func (m *ConsoleUI) resize() {
	_, detailWidth := m.panelWidths()
	m.detailViewport.Width = detailWidth - 3
	m.detailViewport.Height = m.height - 2

	wrap := m.detailViewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}
	if m.renderer == nil || m.rendererWidth != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			m.logger.Warn("Markdown renderer unavailable", "error", err)
			renderer = nil
		}
		m.renderer = renderer
		m.rendererWidth = wrap
	}
}

// writeDetailContent rebuilds the detail panel for the current viewport width.
func (m *ConsoleUI) writeDetailContent() {
	m.detailViewport.SetContent(m.renderDetail(m.detailViewport.Width - 2))
}

func (m ConsoleUI) renderDetail(width int) string {
	if width < 20 {
		width = 20
	}
	if m.world == nil {
		return loadingStyle.Render("Loading era...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.world.Name) + "\n\n")
	b.WriteString(wordwrap.String(m.world.Description, width) + "\n\n")
	if len(m.world.Facts) > 0 {
		b.WriteString(headingStyle.Render("Did you know?") + "\n")
		for _, fact := range m.world.Facts {
			b.WriteString(wordwrap.String("• "+fact, width) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	if r := m.findRegion(m.session.ExpandedRegionID); r != nil {
		m.writeRegion(&b, *r, width)
	} else {
		m.writeRegionCards(&b, width)
	}

	if r := m.findRegion(m.session.NarratingRegionID); r != nil {
		b.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")
		m.writeNarration(&b, *r, width)
	}
	return b.String()
}

func (m ConsoleUI) writeRegionCards(b *strings.Builder, width int) {
	for i, r := range m.world.Regions {
		name := headingStyle.Render(r.Name)
		if i == m.regionCursor && m.focus == focusRegions {
			name = selectedItemStyle.Render(r.Name)
		}
		fmt.Fprintf(b, "%s %s\n", name, promptStyle.Render(fmt.Sprintf("(%d words)", era.WordCount(r.Description))))
		b.WriteString(wordwrap.String(era.Preview(r.Description), width) + "\n\n")
	}
	b.WriteString(promptStyle.Render("Press Enter on a region to read about it.") + "\n\n")
}

func (m ConsoleUI) writeRegion(b *strings.Builder, r era.Region, width int) {
	b.WriteString(headingStyle.Render(r.Name) + "\n\n")

	visible := m.session.AnalysisVisible(r.ID)
	res := m.analyses[regionKey(r.EraID, r.ID)]
	if visible && res != nil {
		b.WriteString(wordwrap.String(analysis.RenderWith(res.EnrichedText, entityStyle.Render), width))
	} else {
		b.WriteString(wordwrap.String(r.Description, width))
	}
	b.WriteString("\n\n")

	if !visible {
		b.WriteString(promptStyle.Render("Press a for the NLWEB analysis, n to narrate.") + "\n\n")
		return
	}

	b.WriteString(headingStyle.Render("NLWEB ANALYSIS") + "\n")
	if res == nil {
		b.WriteString(loadingStyle.Render("Analyzing...") + "\n\n")
		return
	}
	fmt.Fprintf(b, "Readability: %.1f / 100\n", res.ReadabilityScore)
	fmt.Fprintf(b, "Sentiment:   %s\n", res.Sentiment)
	fmt.Fprintf(b, "Length:      %d sentences, %d words\n\n", res.Sentences, res.Words)

	if phrases := res.TopKeyPhrases(maxKeyPhrases); len(phrases) > 0 {
		b.WriteString("Key phrases:\n")
		for _, p := range phrases {
			b.WriteString("• " + entityStyle.Render(p) + "\n")
		}
		b.WriteString("\n")
	}
	if links := res.TopLinks(maxRelatedLinks); len(links) > 0 {
		b.WriteString("Related regions:\n")
		for _, l := range links {
			b.WriteString(wordwrap.String("• "+l.Text+" "+promptStyle.Render(l.Context), width) + "\n")
		}
		b.WriteString("\n")
	}
}

func (m ConsoleUI) writeNarration(b *strings.Builder, r era.Region, width int) {
	header := "NARRATION: " + r.Name
	switch {
	case m.player == nil:
		header += promptStyle.Render("  (set SPEECH_COMMAND to hear it)")
	case m.player.Active() == regionKey(r.EraID, r.ID):
		header += loadingStyle.Render("  ♪ playing")
	}
	b.WriteString(headingStyle.Render(header) + "\n\n")

	narr := m.narrations[regionKey(r.EraID, r.ID)]
	if narr == nil {
		b.WriteString(loadingStyle.Render("Preparing narration...") + "\n")
		return
	}
	b.WriteString(m.renderNarration(narr.Text, width) + "\n\n")
	b.WriteString(promptStyle.Render("c: copy · s: stop") + "\n")
}

// renderNarration renders a narration's markdown, falling back to
// formatNarration without a renderer.
func (m ConsoleUI) renderNarration(text string, width int) string {
	if m.renderer != nil {
		out, err := m.renderer.Render(text)
		if err == nil {
			return strings.Trim(out, "\n")
		}
		m.logger.Debug("Markdown render failed", "error", err)
	}
	return formatNarration(text, width)
}

// formatNarration wraps a narration, rendering its **bold** headings in
// the heading style.
func formatNarration(text string, width int) string {
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 4 && strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") {
			formatted = append(formatted, headingStyle.Render(strings.Trim(trimmed, "*")))
			continue
		}
		formatted = append(formatted, narrationStyle.Render(wordwrap.String(line, width)))
	}
	return strings.Join(formatted, "\n")
}

func (m ConsoleUI) renderLists(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(AppTitle) + "\n\n")

	b.WriteString(listHeading("ERAS", m.focus == focusEras) + "\n")
	for i, e := range m.eras {
		b.WriteString(m.listItem(e.Name, "", i == m.eraCursor && m.focus == focusEras, e.ID == m.session.SelectedEraID, width) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(listHeading("REGIONS", m.focus == focusRegions) + "\n")
	if m.world == nil {
		b.WriteString(loadingStyle.Render("  Loading...") + "\n")
	} else {
		for i, r := range m.world.Regions {
			marker := regionMarkers(m.session, r.ID) + " "
			b.WriteString(m.listItem(r.Name, marker, i == m.regionCursor && m.focus == focusRegions, false, width) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(promptStyle.Render(wordwrap.String("↑/↓ move · Tab switch list · Enter select · a analysis · n narrate · c copy · Esc quit", width)) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), width)) + "\n")
	} else if m.status != "" {
		b.WriteString(loadingStyle.Render(wordwrap.String(m.status, width)) + "\n")
	}
	return b.String()
}

func listHeading(name string, focused bool) string {
	if focused {
		return headingStyle.Render("» " + name)
	}
	return promptStyle.Render("  " + name)
}

func (m ConsoleUI) listItem(name, marker string, cursor, active bool, width int) string {
	avail := width - 2 - len([]rune(marker))
	if avail < 4 {
		avail = 4
	}
	label := marker + truncate.StringWithTail(name, uint(avail), "…")
	switch {
	case cursor:
		return selectedItemStyle.Render("▶ " + label)
	case active:
		return activeItemStyle.Render("• " + label)
	default:
		return "  " + label
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave Chronicle?"))
	content.WriteString("\n\n")
	content.WriteString("Your session ends when you quit.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N or Esc to keep exploring"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	listWidth, detailWidth := m.panelWidths()

	listPanel := listPanelStyle.Width(listWidth).Height(m.height - 1).Render(
		m.renderLists(listWidth - 3),
	)
	detailPanel := detailPanelStyle.Width(detailWidth).Height(m.height - 1).Render(
		m.detailViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
}
