package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"resumekit/internal/domain"
	"resumekit/internal/wizard"
)

type ProfileWizardInput struct {
	Draft      domain.ProfileDraft
	Submit     wizard.SubmitFunc
	APIBaseURL string
}

type ProfileWizardResult struct {
	Submitted      bool
	SessionExpired bool
	Message        string
	// Draft is the state at exit, for saving unsubmitted work.
	Draft domain.ProfileDraft
}

type ProfileWizardRunner func(ProfileWizardInput) (ProfileWizardResult, error)

type profileWizardKeyMap struct {
	NextStep     key.Binding
	PrevStep     key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	Advance      key.Binding
	OptionLeft   key.Binding
	OptionRight  key.Binding
	AddRecord    key.Binding
	RemoveRecord key.Binding
	NextRecord   key.Binding
	PrevRecord   key.Binding
	Skip         key.Binding
	Submit       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func (k profileWizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextStep, k.PrevStep, k.NextField, k.Advance, k.Submit, k.Help, k.Quit}
}

func (k profileWizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextStep, k.PrevStep, k.NextField, k.PrevField, k.Advance, k.OptionLeft, k.OptionRight},
		{k.AddRecord, k.RemoveRecord, k.NextRecord, k.PrevRecord, k.Skip},
		{k.Submit, k.Help, k.Quit},
	}
}

func defaultProfileWizardKeyMap() profileWizardKeyMap {
	return profileWizardKeyMap{
		NextStep: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("pgup", "esc"),
			key.WithHelp("pgup/esc", "prev step"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev field"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next field/add skill"),
		),
		OptionLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev option/skill"),
		),
		OptionRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next option/skill"),
		),
		AddRecord: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add entry"),
		),
		RemoveRecord: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove entry/skill"),
		),
		NextRecord: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "next entry"),
		),
		PrevRecord: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "prev entry"),
		),
		Skip: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "skip section"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type submitDoneMsg struct {
	err error
}

type profileWizardModel struct {
	input    ProfileWizardInput
	ctrl     *wizard.Controller
	original domain.ProfileDraft

	width  int
	height int

	help    help.Model
	keys    profileWizardKeyMap
	spinner spinner.Model

	fields []fieldSpec
	inputs []textinput.Model
	// focus indexes inputs; on Basic Details len(inputs) is the industry selector.
	focus  int
	record int

	skillInput  textinput.Model
	skillCursor int

	notice         string
	dirty          bool
	confirmQuit    bool
	allowQuit      bool
	submitted      bool
	sessionExpired bool
}

func runProfileWizardInteractive(input ProfileWizardInput) (ProfileWizardResult, error) {
	model := newProfileWizardModel(input)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithFilter(profileWizardFilter))
	finalModel, err := program.Run()
	if err != nil {
		return ProfileWizardResult{}, err
	}
	m, ok := finalModel.(*profileWizardModel)
	if !ok {
		return ProfileWizardResult{}, fmt.Errorf("unexpected profile wizard model type %T", finalModel)
	}
	return m.result(), nil
}

// profileWizardFilter drops quit requests while there is unsaved input, unless the
// model has explicitly allowed it.
func profileWizardFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.QuitMsg); !ok {
		return msg
	}
	m, ok := model.(*profileWizardModel)
	if !ok {
		return msg
	}
	if m.dirty && !m.allowQuit {
		return nil
	}
	return msg
}

func newProfileWizardModel(input ProfileWizardInput) *profileWizardModel {
	ctrl := wizard.NewWithDraft(input.Draft, input.Submit)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	skill := textinput.New()
	skill.Prompt = "› "
	skill.Placeholder = "Type skills separated by commas"
	skill.CharLimit = 80
	skill.ShowSuggestions = true

	m := &profileWizardModel{
		input:      input,
		ctrl:       ctrl,
		original:   ctrl.Draft(),
		help:       help.New(),
		keys:       defaultProfileWizardKeyMap(),
		spinner:    sp,
		skillInput: skill,
	}
	m.onStepChanged()
	return m
}

func (m *profileWizardModel) result() ProfileWizardResult {
	out := ProfileWizardResult{
		Submitted:      m.submitted,
		SessionExpired: m.sessionExpired,
		Draft:          m.ctrl.Draft(),
	}
	if r := m.ctrl.Result(); r != nil {
		out.Message = r.Message
	}
	return out
}

func (m *profileWizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *profileWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.ctrl.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case submitDoneMsg:
		return m.finishSubmit(msg.err)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.handleQuit()
		}
		m.confirmQuit = false
		if m.ctrl.Submitting() {
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.notice = ""
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m *profileWizardModel) handleQuit() (tea.Model, tea.Cmd) {
	if m.ctrl.Submitting() {
		m.notice = "Submission in progress. Wait for it to finish before quitting."
		return m, nil
	}
	if !m.dirty || m.confirmQuit {
		m.allowQuit = true
		return m, tea.Quit
	}
	m.confirmQuit = true
	return m, nil
}

func (m *profileWizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.ctrl.Step()
	section := step.Info().Section

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.startSubmit()
	case key.Matches(msg, m.keys.NextStep):
		m.nextStep()
		return m, nil
	case key.Matches(msg, m.keys.PrevStep):
		if m.ctrl.PrevStep() {
			m.onStepChanged()
		}
		return m, nil
	case key.Matches(msg, m.keys.Skip):
		if err := m.ctrl.SkipSection(section); err != nil {
			m.notice = fmt.Sprintf("%s cannot be skipped.", step)
			return m, nil
		}
		m.afterEdit()
		m.onStepChanged()
		return m, nil
	}

	if step == wizard.StepSkills {
		return m.handleSkillKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Advance):
		if m.focus >= m.focusCount()-1 {
			m.nextStep()
		} else {
			m.setFocus(m.focus + 1)
		}
		return m, nil
	}

	if step == wizard.StepBasicDetails && m.focus == len(m.inputs) {
		switch {
		case key.Matches(msg, m.keys.OptionLeft):
			m.shiftIndustry(-1)
		case key.Matches(msg, m.keys.OptionRight):
			m.shiftIndustry(1)
		}
		return m, nil
	}

	if section != "" {
		switch {
		case key.Matches(msg, m.keys.AddRecord):
			if err := m.ctrl.AddListItem(section); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.record = m.ctrl.Draft().Len(section) - 1
			m.afterEdit()
			m.loadInputs()
			return m, nil
		case key.Matches(msg, m.keys.RemoveRecord):
			m.removeRecord(section)
			return m, nil
		case key.Matches(msg, m.keys.NextRecord):
			m.selectRecord(m.record + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevRecord):
			m.selectRecord(m.record - 1)
			return m, nil
		}
	}

	return m.updateFocusedInput(msg)
}

func (m *profileWizardModel) handleSkillKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	skills := m.ctrl.Draft().Skills
	empty := m.skillInput.Value() == ""
	switch {
	case key.Matches(msg, m.keys.Advance):
		m.skillInput.SetValue(m.ctrl.FlushSkillText(m.skillInput.Value()))
		m.afterSkillsChanged()
		return m, nil
	case key.Matches(msg, m.keys.RemoveRecord):
		if len(skills) == 0 {
			return m, nil
		}
		idx := m.skillCursor
		if idx < 0 || idx >= len(skills) {
			idx = len(skills) - 1
		}
		if err := m.ctrl.RemoveSkill(idx); err != nil {
			m.notice = err.Error()
		}
		m.afterSkillsChanged()
		return m, nil
	case empty && key.Matches(msg, m.keys.OptionLeft):
		if m.skillCursor > 0 {
			m.skillCursor--
		} else if m.skillCursor < 0 && len(skills) > 0 {
			m.skillCursor = len(skills) - 1
		}
		return m, nil
	case empty && key.Matches(msg, m.keys.OptionRight):
		if m.skillCursor >= 0 {
			m.skillCursor++
			if m.skillCursor >= len(skills) {
				m.skillCursor = -1
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.skillInput, cmd = m.skillInput.Update(msg)
	if rest := m.ctrl.IngestSkillText(m.skillInput.Value()); rest != m.skillInput.Value() {
		m.skillInput.SetValue(rest)
		m.afterSkillsChanged()
	}
	return m, cmd
}

func (m *profileWizardModel) afterSkillsChanged() {
	m.skillCursor = -1
	m.afterEdit()
	if len(m.ctrl.Draft().Skills) >= domain.MaxSkills {
		m.notice = fmt.Sprintf("You can add up to %d skills.", domain.MaxSkills)
	}
}

// updateFocusedInput forwards msg to the focused text input and writes its value
// back into the draft.
func (m *profileWizardModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ctrl.Step() == wizard.StepSkills {
		var cmd tea.Cmd
		m.skillInput, cmd = m.skillInput.Update(msg)
		return m, cmd
	}
	if m.focus < 0 || m.focus >= len(m.inputs) {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.writeField(m.fields[m.focus].key, after)
	}
	return m, cmd
}

func (m *profileWizardModel) writeField(field, value string) {
	step := m.ctrl.Step()
	var err error
	if step == wizard.StepBasicDetails {
		err = m.ctrl.SetField(field, value)
	} else {
		err = m.ctrl.SetListField(step.Info().Section, m.record, map[string]string{field: value})
	}
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.afterEdit()
}

func (m *profileWizardModel) shiftIndustry(delta int) {
	current := m.ctrl.Draft().Industry
	next := shiftEnumValue(current, industryOptions(), delta)
	if err := m.ctrl.SetField(industryField, next); err != nil {
		m.notice = err.Error()
		return
	}
	m.skillInput.SetSuggestions(domain.SkillSuggestions(next))
	m.afterEdit()
}

func (m *profileWizardModel) removeRecord(section domain.Section) {
	n := m.ctrl.Draft().Len(section)
	if n == 0 {
		return
	}
	if n == 1 {
		// Keep one entry on screen; clearing it is the same as removing it.
		blank := map[string]string{}
		for _, f := range stepFields(m.ctrl.Step()) {
			blank[f.key] = ""
		}
		if err := m.ctrl.SetListField(section, 0, blank); err != nil {
			m.notice = err.Error()
			return
		}
	} else if err := m.ctrl.RemoveListItem(section, m.record); err != nil {
		m.notice = err.Error()
		return
	}
	if m.record >= m.ctrl.Draft().Len(section) {
		m.record = m.ctrl.Draft().Len(section) - 1
	}
	if m.record < 0 {
		m.record = 0
	}
	m.afterEdit()
	m.loadInputs()
}

func (m *profileWizardModel) selectRecord(idx int) {
	n := m.ctrl.Draft().Len(m.ctrl.Step().Info().Section)
	if idx < 0 || idx >= n {
		return
	}
	m.record = idx
	m.loadInputs()
}

func (m *profileWizardModel) nextStep() {
	if m.ctrl.NextStep() {
		m.onStepChanged()
		return
	}
	if len(m.ctrl.Errors()) > 0 {
		m.focusFirstError()
		return
	}
	if m.ctrl.Step() == wizard.StepAchievements {
		m.notice = "This is the last step. Press ctrl+s to submit."
	}
}

func (m *profileWizardModel) startSubmit() (tea.Model, tea.Cmd) {
	if m.input.Submit == nil {
		m.notice = "Submission is not configured."
		return m, nil
	}
	payload, err := m.ctrl.BeginSubmit()
	switch {
	case errors.Is(err, wizard.ErrInvalidDraft):
		// Walk forward from the start so the first failing step is shown with its errors.
		m.ctrl.GoTo(wizard.StepBasicDetails)
		m.ctrl.GoTo(wizard.StepAchievements)
		m.onStepChanged()
		m.focusFirstError()
		m.notice = "Fix the highlighted fields before submitting."
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}
	submit := m.input.Submit
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return submitDoneMsg{err: submit(context.Background(), payload)}
	})
}

func (m *profileWizardModel) finishSubmit(err error) (tea.Model, tea.Cmd) {
	if err := m.ctrl.FinishSubmit(err); err != nil {
		m.sessionExpired = true
		m.allowQuit = true
		return m, tea.Quit
	}
	if r := m.ctrl.Result(); r != nil && r.Kind == wizard.ResultSuccess {
		m.submitted = true
		m.allowQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *profileWizardModel) afterEdit() {
	m.dirty = !reflect.DeepEqual(m.ctrl.Draft(), m.original)
}

func (m *profileWizardModel) onStepChanged() {
	m.record = 0
	m.focus = 0
	m.skillCursor = -1
	m.skillInput.SetValue("")
	m.skillInput.SetSuggestions(domain.SkillSuggestions(m.ctrl.Draft().Industry))
	m.loadInputs()
}

// loadInputs rebuilds the text inputs for the current step and record from the draft.
func (m *profileWizardModel) loadInputs() {
	step := m.ctrl.Step()
	m.fields = stepFields(step)
	m.inputs = make([]textinput.Model, len(m.fields))
	draft := m.ctrl.Draft()
	var rec domain.Record
	if step != wizard.StepBasicDetails {
		var ok bool
		if rec, ok = draft.Record(step.Info().Section, m.record); !ok {
			m.fields = nil
			m.inputs = nil
		}
	}
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.placeholder
		ti.CharLimit = 200
		var value string
		if rec != nil {
			value, _ = rec.Get(f.key)
		} else {
			value, _ = draft.Scalar(f.key)
		}
		ti.SetValue(value)
		m.inputs[i] = ti
	}
	m.setFocus(m.focus)
}

func (m *profileWizardModel) focusCount() int {
	if m.ctrl.Step() == wizard.StepBasicDetails {
		return len(m.inputs) + 1
	}
	return len(m.inputs)
}

func (m *profileWizardModel) setFocus(idx int) {
	if m.ctrl.Step() == wizard.StepSkills {
		m.skillInput.Focus()
		return
	}
	n := m.focusCount()
	if n == 0 {
		m.focus = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// focusFirstError moves to the first record and field that carries an error on the
// current step.
func (m *profileWizardModel) focusFirstError() {
	step := m.ctrl.Step()
	errs := m.ctrl.Errors()
	if step == wizard.StepSkills {
		return
	}
	if step == wizard.StepBasicDetails {
		for i, f := range m.fields {
			if _, ok := errs[f.key]; ok {
				m.setFocus(i)
				return
			}
		}
		return
	}
	section := step.Info().Section
	for r := 0; r < m.ctrl.Draft().Len(section); r++ {
		for i, f := range m.fields {
			if _, ok := errs[domain.FieldKey(section, r, f.key)]; ok {
				m.record = r
				m.focus = i
				m.loadInputs()
				return
			}
		}
	}
}

func (m *profileWizardModel) fieldError(field string) string {
	errs := m.ctrl.Errors()
	step := m.ctrl.Step()
	if step == wizard.StepBasicDetails {
		return errs[field]
	}
	return errs[domain.FieldKey(step.Info().Section, m.record, field)]
}

func (m *profileWizardModel) View() string {
	var b strings.Builder

	info := m.ctrl.Step().Info()
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		titleBadgeStyle.Render("resumekit"),
		" "+headerStyle.Render("profile wizard"),
	)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("Step %d of %d: %s", int(info.Step)+1, len(wizard.Steps()), info.Description)))
	b.WriteString("\n\n")
	b.WriteString(m.stepsHeader())
	b.WriteString("\n")

	var content string
	switch info.Step {
	case wizard.StepBasicDetails:
		content = m.viewBasicDetails()
	case wizard.StepSkills:
		content = m.viewSkills()
	default:
		content = m.viewRecords(info)
	}
	contentPanel := panelStyle
	if w := m.viewContentWidth(); w > 0 {
		contentPanel = contentPanel.Width(w)
	}
	b.WriteString(contentPanel.Render(content))
	b.WriteString("\n")

	if banner := m.viewBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	helpPanel := helpPanelStyle
	if w := m.viewContentWidth(); w > 0 {
		helpPanel = helpPanel.Width(w)
	}
	helpBlock := helpPanel.Render(m.help.View(m.keys))

	body := b.String()
	spacer := ""
	if m.height > 0 {
		const pageVerticalPadding = 2
		const separatorLines = 2
		total := lipgloss.Height(body) + separatorLines + lipgloss.Height(helpBlock) + pageVerticalPadding
		if gap := m.height - total; gap > 0 {
			spacer = strings.Repeat("\n", gap)
		}
	}
	return pageStyle.Render(body+"\n\n"+spacer+helpBlock) + "\n"
}

func (m *profileWizardModel) viewContentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - 6
	if w < 40 {
		return 40
	}
	return w
}

func (m *profileWizardModel) stepsHeader() string {
	current := m.ctrl.Step()
	steps := wizard.Steps()
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		switch {
		case s.Step == current:
			parts = append(parts, tabCurrentStyle.Render(s.Title))
		case s.Step < current:
			parts = append(parts, tabDoneStyle.Render("✓ "+s.Title))
		default:
			parts = append(parts, tabBaseStyle.Render(s.Title))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
	if m.width <= 0 {
		return row
	}
	gap := m.width - lipgloss.Width(row) - 4
	if gap <= 0 {
		return row
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, tabGapStyle.Render(strings.Repeat(" ", gap)))
}

func (m *profileWizardModel) viewFields() []string {
	blocks := make([]string, 0, len(m.inputs)+1)
	for i, f := range m.fields {
		focused := i == m.focus
		blocks = append(blocks, renderFieldBlock(focused, f.title, "", renderInputContainer(m.inputs[i].View(), focused), m.fieldError(f.key)))
	}
	return blocks
}

func (m *profileWizardModel) viewBasicDetails() string {
	blocks := m.viewFields()
	industry := m.ctrl.Draft().Industry
	focused := m.focus == len(m.inputs)
	blocks = append(blocks, renderFieldBlock(focused, "Industry", "Used to suggest skills. Left/right to change.",
		renderEnumLine(industry, industryOptions(), domain.IndustryLabel), m.ctrl.Errors()[industryField]))
	return strings.Join(blocks, "\n")
}

func (m *profileWizardModel) viewRecords(info wizard.StepInfo) string {
	var b strings.Builder
	n := m.ctrl.Draft().Len(info.Section)
	header := labelStyle.Render(info.Title)
	if n > 0 {
		header += " " + renderBadge(fmt.Sprintf("entry %d of %d", m.record+1, n), badgeToneInfo)
	}
	if info.Section.Optional() {
		header += " " + renderBadge("optional", badgeToneNeutral)
	}
	b.WriteString(header)
	b.WriteString("\n")
	hint := "ctrl+n adds an entry, ctrl+f/ctrl+b switch entries."
	if info.Section.Optional() {
		hint += " ctrl+k skips this section."
	}
	b.WriteString(hintStyle.Render(hint))
	b.WriteString("\n\n")
	if n == 0 {
		b.WriteString(hintStyle.Render("Section skipped. Press ctrl+n to add an entry."))
		return b.String()
	}
	b.WriteString(strings.Join(m.viewFields(), "\n"))
	return b.String()
}

func (m *profileWizardModel) viewSkills() string {
	var b strings.Builder
	draft := m.ctrl.Draft()
	errs := m.ctrl.Errors()
	errs.Merge(m.ctrl.Advisories())

	b.WriteString(labelStyle.Render("Skills"))
	b.WriteString(" " + renderBadge(fmt.Sprintf("%d/%d", len(draft.Skills), domain.MaxSkills), badgeToneNeutral))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Separate skills with commas or spaces; enter adds the rest. Left/right selects, ctrl+d removes."))
	b.WriteString("\n\n")

	if len(draft.Skills) > 0 {
		chips := make([]string, 0, len(draft.Skills))
		for i, s := range draft.Skills {
			_, flagged := errs[domain.SkillKey(i)]
			chips = append(chips, renderSkillChip(s, i == m.skillCursor, flagged))
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
		for i := range draft.Skills {
			if msg, ok := errs[domain.SkillKey(i)]; ok {
				b.WriteString(warnStyle.Render(fmt.Sprintf("%s: %s", draft.Skills[i], msg)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(renderFieldBlock(true, "Add skills", "", renderInputContainer(m.skillInput.View(), true), errs[domain.SkillsErrorKey]))
	if suggestions := domain.SkillSuggestions(draft.Industry); len(suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Suggestions (tab to complete): " + strings.Join(suggestions, ", ")))
	}
	return b.String()
}

func (m *profileWizardModel) viewBanner() string {
	var lines []string
	if m.ctrl.Submitting() {
		lines = append(lines, m.spinner.View()+" Submitting profile to "+m.input.APIBaseURL+"...")
	}
	if r := m.ctrl.Result(); r != nil {
		if r.Kind == wizard.ResultSuccess {
			lines = append(lines, successAlertStyle.Render(renderBadge("done", badgeToneSuccess)+" "+okStyle.Render(r.Message)))
		} else {
			lines = append(lines, alertStyle.Render(renderBadge("failed", badgeToneDanger)+" "+errorStyle.Render(r.Message)))
		}
	}
	if m.notice != "" {
		lines = append(lines, alertStyle.Render(errorStyle.Render(m.notice)))
	}
	if m.confirmQuit {
		lines = append(lines, alertStyle.Render(errorStyle.Render("Unsaved changes. Press Ctrl+C again to discard and quit.")))
	}
	return strings.Join(lines, "\n")
}
