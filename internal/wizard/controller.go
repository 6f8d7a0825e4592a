// Package wizard drives the multi-step profile intake: step navigation, per-step
// validation gating, repeated-section editing, skill tag entry, and submission.
//
// A Controller is single-owner state. Event loops call it from one goroutine; the only
// suspension point is the submit call, which is split into BeginSubmit/FinishSubmit so
// the network round trip can run outside the loop.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"resumekit/internal/domain"
)

type Step int

const (
	StepBasicDetails Step = iota
	StepEducation
	StepExperience
	StepSkills
	StepProjects
	StepCertifications
	StepAchievements
)

type StepInfo struct {
	Step        Step
	Title       string
	Description string
	// Section is empty for Basic Details.
	Section domain.Section
}

var steps = []StepInfo{
	{Step: StepBasicDetails, Title: "Basic Details", Description: "Personal information"},
	{Step: StepEducation, Title: "Education", Description: "Academic background", Section: domain.SectionEducation},
	{Step: StepExperience, Title: "Experience", Description: "Work history", Section: domain.SectionExperience},
	{Step: StepSkills, Title: "Skills", Description: "Technical and professional skills", Section: domain.SectionSkills},
	{Step: StepProjects, Title: "Projects", Description: "Portfolio projects", Section: domain.SectionProjects},
	{Step: StepCertifications, Title: "Certifications", Description: "Professional certifications", Section: domain.SectionCertifications},
	{Step: StepAchievements, Title: "Achievements", Description: "Notable accomplishments", Section: domain.SectionAchievements},
}

func Steps() []StepInfo {
	return append([]StepInfo(nil), steps...)
}

func (s Step) Info() StepInfo {
	if s < 0 || int(s) >= len(steps) {
		return StepInfo{Step: s, Title: fmt.Sprintf("Step %d", int(s))}
	}
	return steps[s]
}

func (s Step) String() string {
	return s.Info().Title
}

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotSkippable    = errors.New("section cannot be skipped")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
)

type Controller struct {
	step       Step
	draft      domain.ProfileDraft
	errors     domain.ErrorMap
	result     *Result
	submitting bool
	submit     SubmitFunc
}

// New starts a session on the first step with one empty record in every list.
func New(submit SubmitFunc) *Controller {
	return NewWithDraft(domain.NewProfileDraft(), submit)
}

// NewWithDraft starts a session from a prefilled draft.
func NewWithDraft(draft domain.ProfileDraft, submit SubmitFunc) *Controller {
	d := draft.Clone()
	d.Normalize()
	return &Controller{
		step:   StepBasicDetails,
		draft:  d,
		errors: domain.ErrorMap{},
		submit: submit,
	}
}

func (c *Controller) Step() Step {
	return c.step
}

func (c *Controller) Draft() domain.ProfileDraft {
	return c.draft.Clone()
}

func (c *Controller) Errors() domain.ErrorMap {
	return c.errors.Clone()
}

func (c *Controller) Result() *Result {
	if c.result == nil {
		return nil
	}
	r := *c.result
	return &r
}

func (c *Controller) Submitting() bool {
	return c.submitting
}

func (c *Controller) SetField(field, value string) error {
	if err := c.draft.SetScalar(field, value); err != nil {
		return err
	}
	delete(c.errors, field)
	return nil
}

// SetListField merges patch into one record. Nothing changes when the index or any
// key of patch is invalid.
func (c *Controller) SetListField(section domain.Section, index int, patch map[string]string) error {
	rec, ok := c.draft.Record(section, index)
	if !ok {
		return fmt.Errorf("%s[%d]: %w", section, index, ErrIndexOutOfRange)
	}
	for k := range patch {
		if _, known := rec.Get(k); !known {
			return fmt.Errorf("%s has no field %q", section, k)
		}
	}
	for k, v := range patch {
		rec.Set(k, v)
	}
	c.errors.DeleteRecord(section, index)
	return nil
}

func (c *Controller) AddListItem(section domain.Section) error {
	return c.draft.AppendRecord(section)
}

// RemoveListItem allows removing the last record; callers that display the list keep
// at least one on screen.
func (c *Controller) RemoveListItem(section domain.Section, index int) error {
	if section == domain.SectionSkills {
		return c.RemoveSkill(index)
	}
	if _, ok := c.draft.Record(section, index); !ok {
		return fmt.Errorf("%s[%d]: %w", section, index, ErrIndexOutOfRange)
	}
	if err := c.draft.RemoveAt(section, index); err != nil {
		return err
	}
	c.errors.DeleteRecord(section, index)
	c.errors.ShiftRecords(section, index)
	return nil
}

// SkipSection empties the current step's optional section and moves forward one step
// without validating. Sections other than the current step's are refused.
func (c *Controller) SkipSection(section domain.Section) error {
	if !section.Optional() {
		return fmt.Errorf("%s: %w", section, ErrNotSkippable)
	}
	if current := c.step.Info().Section; section != current {
		return fmt.Errorf("%s from step %s: %w", section, c.step, ErrNotSkippable)
	}
	c.draft.Clear(section)
	c.errors = domain.ErrorMap{}
	if int(c.step) < len(steps)-1 {
		c.step++
	}
	return nil
}

// IngestSkillText turns a comma- or space-delimited buffer into skill tags and returns
// what should remain in the input buffer.
func (c *Controller) IngestSkillText(raw string) string {
	if !strings.ContainsAny(raw, ", ") {
		return raw
	}
	c.appendSkills(splitSkills(raw))
	return ""
}

// FlushSkillText adds whatever is left in the buffer as a single skill.
func (c *Controller) FlushSkillText(raw string) string {
	if strings.ContainsAny(raw, ", ") {
		return c.IngestSkillText(raw)
	}
	if s := strings.TrimSpace(raw); s != "" {
		c.appendSkills([]string{s})
	}
	return ""
}

func (c *Controller) appendSkills(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	room := domain.MaxSkills - len(c.draft.Skills)
	if room < 0 {
		room = 0
	}
	if len(tokens) > room {
		tokens = tokens[:room]
	}
	c.draft.Skills = append(c.draft.Skills, tokens...)
	c.errors.DeleteSkillErrors()
}

func splitSkills(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) RemoveSkill(index int) error {
	if index < 0 || index >= len(c.draft.Skills) {
		return fmt.Errorf("skills[%d]: %w", index, ErrIndexOutOfRange)
	}
	if err := c.draft.RemoveAt(domain.SectionSkills, index); err != nil {
		return err
	}
	delete(c.errors, domain.SkillKey(index))
	delete(c.errors, domain.SkillsErrorKey)
	c.errors.ShiftRecords(domain.SectionSkills, index)
	return nil
}

// Advisories returns the non-blocking per-skill notes for the current skills. They are
// computed on demand, so they stay visible while the user edits and after NextStep
// leaves the error map empty.
func (c *Controller) Advisories() domain.ErrorMap {
	out := domain.ErrorMap{}
	for k, v := range validateSkills(c.draft.Skills) {
		if isSkillAdvisory(k) {
			out[k] = v
		}
	}
	return out
}

func (c *Controller) ValidateStep(step Step) domain.ErrorMap {
	return ValidateStep(c.draft, step)
}

// NextStep advances when the current step has no blocking errors. On failure the
// error map is replaced with the step's result.
func (c *Controller) NextStep() bool {
	errs := ValidateStep(c.draft, c.step)
	if Blocking(errs) {
		c.errors = errs
		return false
	}
	c.errors = domain.ErrorMap{}
	if int(c.step) < len(steps)-1 {
		c.step++
		return true
	}
	return false
}

func (c *Controller) PrevStep() bool {
	if c.step == StepBasicDetails {
		return false
	}
	c.errors = domain.ErrorMap{}
	c.step--
	return true
}

// GoTo jumps to step when every step before it validates; otherwise it stops on the
// first failing step with its errors shown.
func (c *Controller) GoTo(step Step) bool {
	if step < 0 || int(step) >= len(steps) {
		return false
	}
	for c.step > step {
		c.PrevStep()
	}
	for c.step < step {
		if !c.NextStep() {
			return false
		}
	}
	return true
}
