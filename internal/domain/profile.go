package domain

import (
	"errors"
	"fmt"
	"strings"
)

const MaxSkills = 20

var ErrSessionExpired = errors.New("session expired")

type Section string

const (
	SectionEducation      Section = "education"
	SectionExperience     Section = "experience"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionAchievements   Section = "achievements"
)

// RecordSections lists the repeated sections whose entries are records, in wizard order.
var RecordSections = []Section{
	SectionEducation,
	SectionExperience,
	SectionProjects,
	SectionCertifications,
	SectionAchievements,
}

func ParseSection(raw string) (Section, error) {
	switch s := Section(strings.ToLower(strings.TrimSpace(raw))); s {
	case SectionEducation, SectionExperience, SectionSkills, SectionProjects, SectionCertifications, SectionAchievements:
		return s, nil
	default:
		return "", fmt.Errorf("unknown section %q", raw)
	}
}

// Optional reports whether the section may be skipped entirely.
func (s Section) Optional() bool {
	switch s {
	case SectionProjects, SectionCertifications, SectionAchievements:
		return true
	default:
		return false
	}
}

// Fields returns the record field keys of the section in template order.
func (s Section) Fields() []string {
	switch s {
	case SectionEducation:
		return []string{"institution", "certificate_level", "start_year", "end_year"}
	case SectionExperience:
		return []string{"title", "position", "company", "start_date", "end_date", "description"}
	case SectionProjects:
		return []string{"title", "description", "link"}
	case SectionCertifications:
		return []string{"title", "issuer", "issue_date", "expiration_date"}
	case SectionAchievements:
		return []string{"title", "description", "achieved_at"}
	default:
		return nil
	}
}

// Record is one entry of a repeated section.
type Record interface {
	Get(field string) (string, bool)
	Set(field, value string) bool
	Empty() bool
}

type field struct {
	key string
	ptr *string
}

func getField(fields []field, key string) (string, bool) {
	for _, f := range fields {
		if f.key == key {
			return *f.ptr, true
		}
	}
	return "", false
}

func setField(fields []field, key, value string) bool {
	for _, f := range fields {
		if f.key == key {
			*f.ptr = value
			return true
		}
	}
	return false
}

func allEmpty(fields []field) bool {
	for _, f := range fields {
		if *f.ptr != "" {
			return false
		}
	}
	return true
}

type Education struct {
	Institution      string `yaml:"institution" json:"institution,omitempty"`
	CertificateLevel string `yaml:"certificate_level" json:"certificate_level,omitempty"`
	StartYear        string `yaml:"start_year" json:"start_year,omitempty"`
	EndYear          string `yaml:"end_year" json:"end_year,omitempty"`
}

func (e *Education) fields() []field {
	return []field{
		{"institution", &e.Institution},
		{"certificate_level", &e.CertificateLevel},
		{"start_year", &e.StartYear},
		{"end_year", &e.EndYear},
	}
}

func (e *Education) Get(key string) (string, bool) { return getField(e.fields(), key) }
func (e *Education) Set(key, value string) bool { return setField(e.fields(), key, value) }
func (e *Education) Empty() bool { return allEmpty(e.fields()) }

type Experience struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Position    string `yaml:"position" json:"position,omitempty"`
	Company     string `yaml:"company" json:"company,omitempty"`
	StartDate   string `yaml:"start_date" json:"start_date,omitempty"`
	EndDate     string `yaml:"end_date" json:"end_date,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

func (e *Experience) fields() []field {
	return []field{
		{"title", &e.Title},
		{"position", &e.Position},
		{"company", &e.Company},
		{"start_date", &e.StartDate},
		{"end_date", &e.EndDate},
		{"description", &e.Description},
	}
}

func (e *Experience) Get(key string) (string, bool) { return getField(e.fields(), key) }
func (e *Experience) Set(key, value string) bool { return setField(e.fields(), key, value) }
func (e *Experience) Empty() bool { return allEmpty(e.fields()) }

type Project struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Link        string `yaml:"link" json:"link,omitempty"`
}

func (p *Project) fields() []field {
	return []field{
		{"title", &p.Title},
		{"description", &p.Description},
		{"link", &p.Link},
	}
}

func (p *Project) Get(key string) (string, bool) { return getField(p.fields(), key) }
func (p *Project) Set(key, value string) bool { return setField(p.fields(), key, value) }
func (p *Project) Empty() bool { return allEmpty(p.fields()) }

type Certification struct {
	Title          string `yaml:"title" json:"title,omitempty"`
	Issuer         string `yaml:"issuer" json:"issuer,omitempty"`
	IssueDate      string `yaml:"issue_date" json:"issue_date,omitempty"`
	ExpirationDate string `yaml:"expiration_date" json:"expiration_date,omitempty"`
}

func (c *Certification) fields() []field {
	return []field{
		{"title", &c.Title},
		{"issuer", &c.Issuer},
		{"issue_date", &c.IssueDate},
		{"expiration_date", &c.ExpirationDate},
	}
}

func (c *Certification) Get(key string) (string, bool) { return getField(c.fields(), key) }
func (c *Certification) Set(key, value string) bool { return setField(c.fields(), key, value) }
func (c *Certification) Empty() bool { return allEmpty(c.fields()) }

type Achievement struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	AchievedAt  string `yaml:"achieved_at" json:"achieved_at,omitempty"`
}

func (a *Achievement) fields() []field {
	return []field{
		{"title", &a.Title},
		{"description", &a.Description},
		{"achieved_at", &a.AchievedAt},
	}
}

func (a *Achievement) Get(key string) (string, bool) { return getField(a.fields(), key) }
func (a *Achievement) Set(key, value string) bool { return setField(a.fields(), key, value) }
func (a *Achievement) Empty() bool { return allEmpty(a.fields()) }

// ProfileDraft is the in-progress profile. It doubles as the submit payload once cleaned.
type ProfileDraft struct {
	FullName string `yaml:"full_name" json:"full_name"`
	Phone    string `yaml:"phone" json:"phone"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	GitHub   string `yaml:"github" json:"github"`
	Website  string `yaml:"website" json:"website"`
	Country  string `yaml:"country" json:"country"`
	City     string `yaml:"city" json:"city"`
	Industry string `yaml:"industry" json:"industry"`

	Education      []Education     `yaml:"education" json:"education"`
	Experience     []Experience    `yaml:"experience" json:"experience"`
	Skills         []string        `yaml:"skills" json:"skills"`
	Projects       []Project       `yaml:"projects" json:"projects"`
	Certifications []Certification `yaml:"certifications" json:"certifications"`
	Achievements   []Achievement   `yaml:"achievements" json:"achievements"`
}

func NewProfileDraft() ProfileDraft {
	return ProfileDraft{
		Education:      []Education{{}},
		Experience:     []Experience{{}},
		Skills:         []string{},
		Projects:       []Project{{}},
		Certifications: []Certification{{}},
		Achievements:   []Achievement{{}},
	}
}

func ScalarFields() []string {
	return []string{"full_name", "phone", "linkedin", "github", "website", "country", "city", "industry"}
}

func (d *ProfileDraft) scalars() []field {
	return []field{
		{"full_name", &d.FullName},
		{"phone", &d.Phone},
		{"linkedin", &d.LinkedIn},
		{"github", &d.GitHub},
		{"website", &d.Website},
		{"country", &d.Country},
		{"city", &d.City},
		{"industry", &d.Industry},
	}
}

func (d *ProfileDraft) Scalar(key string) (string, bool) {
	return getField(d.scalars(), key)
}

func (d *ProfileDraft) SetScalar(key, value string) error {
	if !setField(d.scalars(), key, value) {
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

// Len returns the number of entries in a repeated section.
func (d ProfileDraft) Len(s Section) int {
	switch s {
	case SectionEducation:
		return len(d.Education)
	case SectionExperience:
		return len(d.Experience)
	case SectionSkills:
		return len(d.Skills)
	case SectionProjects:
		return len(d.Projects)
	case SectionCertifications:
		return len(d.Certifications)
	case SectionAchievements:
		return len(d.Achievements)
	default:
		return 0
	}
}

// Record returns a mutable view of the record at index, or false when out of range.
func (d *ProfileDraft) Record(s Section, index int) (Record, bool) {
	if index < 0 || index >= d.Len(s) {
		return nil, false
	}
	switch s {
	case SectionEducation:
		return &d.Education[index], true
	case SectionExperience:
		return &d.Experience[index], true
	case SectionProjects:
		return &d.Projects[index], true
	case SectionCertifications:
		return &d.Certifications[index], true
	case SectionAchievements:
		return &d.Achievements[index], true
	default:
		return nil, false
	}
}

// AppendRecord adds an empty template record to the section.
func (d *ProfileDraft) AppendRecord(s Section) error {
	switch s {
	case SectionEducation:
		d.Education = append(d.Education, Education{})
	case SectionExperience:
		d.Experience = append(d.Experience, Experience{})
	case SectionProjects:
		d.Projects = append(d.Projects, Project{})
	case SectionCertifications:
		d.Certifications = append(d.Certifications, Certification{})
	case SectionAchievements:
		d.Achievements = append(d.Achievements, Achievement{})
	default:
		return fmt.Errorf("section %q has no records", s)
	}
	return nil
}

func (d *ProfileDraft) RemoveAt(s Section, index int) error {
	if index < 0 || index >= d.Len(s) {
		return fmt.Errorf("%s index %d out of range", s, index)
	}
	switch s {
	case SectionEducation:
		d.Education = removeAt(d.Education, index)
	case SectionExperience:
		d.Experience = removeAt(d.Experience, index)
	case SectionSkills:
		d.Skills = removeAt(d.Skills, index)
	case SectionProjects:
		d.Projects = removeAt(d.Projects, index)
	case SectionCertifications:
		d.Certifications = removeAt(d.Certifications, index)
	case SectionAchievements:
		d.Achievements = removeAt(d.Achievements, index)
	}
	return nil
}

// Clear empties the section. Skipping an optional section is the only caller that may
// leave a record list without any record.
func (d *ProfileDraft) Clear(s Section) {
	switch s {
	case SectionEducation:
		d.Education = []Education{}
	case SectionExperience:
		d.Experience = []Experience{}
	case SectionSkills:
		d.Skills = []string{}
	case SectionProjects:
		d.Projects = []Project{}
	case SectionCertifications:
		d.Certifications = []Certification{}
	case SectionAchievements:
		d.Achievements = []Achievement{}
	}
}

// Clone returns a deep copy; slices of the copy never alias the receiver.
func (d ProfileDraft) Clone() ProfileDraft {
	out := d
	out.Education = append([]Education{}, d.Education...)
	out.Experience = append([]Experience{}, d.Experience...)
	out.Skills = append([]string{}, d.Skills...)
	out.Projects = append([]Project{}, d.Projects...)
	out.Certifications = append([]Certification{}, d.Certifications...)
	out.Achievements = append([]Achievement{}, d.Achievements...)
	return out
}

// Normalize restores the one-record-per-list display invariant for drafts read from disk.
func (d *ProfileDraft) Normalize() {
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if len(d.Education) == 0 {
		d.Education = []Education{{}}
	}
	if len(d.Experience) == 0 {
		d.Experience = []Experience{{}}
	}
	if len(d.Projects) == 0 {
		d.Projects = []Project{{}}
	}
	if len(d.Certifications) == 0 {
		d.Certifications = []Certification{{}}
	}
	if len(d.Achievements) == 0 {
		d.Achievements = []Achievement{{}}
	}
}

func removeAt[T any](in []T, index int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:index]...)
	return append(out, in[index+1:]...)
}
