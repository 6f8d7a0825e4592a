package wizard

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"resumekit/internal/domain"
)

var (
	linkedInPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/.*$`)
	gitHubPattern   = regexp.MustCompile(`^https?://(www\.)?github\.com/.*$`)
	httpURLPattern  = regexp.MustCompile(`^https?://.*$`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
	minSkillLength = 2
)

// ValidateStep checks the rules of one step against the draft. It never mutates the
// draft, and an empty result means the step passes.
func ValidateStep(d domain.ProfileDraft, step Step) domain.ErrorMap {
	switch step {
	case StepBasicDetails:
		return validateBasicDetails(d)
	case StepEducation:
		return validateEducation(d.Education)
	case StepExperience:
		return validateExperience(d.Experience)
	case StepSkills:
		return validateSkills(d.Skills)
	case StepProjects:
		return validateProjects(d.Projects)
	case StepCertifications:
		return validateCertifications(d.Certifications)
	default:
		return domain.ErrorMap{}
	}
}

// ValidateAll is the pre-submit check over the whole draft regardless of the current step.
func ValidateAll(d domain.ProfileDraft) domain.ErrorMap {
	errs := validateBasicDetails(d)
	errs.Merge(validateEducation(d.Education))
	errs.Merge(validateExperience(d.Experience))
	errs.Merge(validateProjects(d.Projects))
	errs.Merge(validateCertifications(d.Certifications))
	errs.Merge(validateSkills(d.Skills))
	return errs
}

// Blocking reports whether errs holds anything beyond per-skill advisories.
func Blocking(errs domain.ErrorMap) bool {
	for k := range errs {
		if !isSkillAdvisory(k) {
			return true
		}
	}
	return false
}

func isSkillAdvisory(key string) bool {
	tail, ok := strings.CutPrefix(key, "skills_")
	if !ok {
		return false
	}
	_, err := strconv.Atoi(tail)
	return err == nil
}

func validateBasicDetails(d domain.ProfileDraft) domain.ErrorMap {
	errs := domain.ErrorMap{}
	if strings.TrimSpace(d.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if strings.TrimSpace(d.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if n := countDigits(d.Phone); n < minPhoneDigits || n > maxPhoneDigits {
		errs["phone"] = "Invalid phone number format"
	}
	if d.LinkedIn != "" && !linkedInPattern.MatchString(d.LinkedIn) {
		errs["linkedin"] = "Invalid LinkedIn URL"
	}
	if d.GitHub != "" && !gitHubPattern.MatchString(d.GitHub) {
		errs["github"] = "Invalid GitHub URL"
	}
	if d.Website != "" && !httpURLPattern.MatchString(d.Website) {
		errs["website"] = "Invalid website URL"
	}
	return errs
}

func validateEducation(items []domain.Education) domain.ErrorMap {
	errs := domain.ErrorMap{}
	for i, item := range items {
		if item.Institution != "" && item.CertificateLevel == "" {
			errs[domain.FieldKey(domain.SectionEducation, i, "certificate_level")] = "Degree is required if institution is provided"
		}
		if item.StartYear == "" || item.EndYear == "" {
			continue
		}
		start, okStart := parseYear(item.StartYear)
		end, okEnd := parseYear(item.EndYear)
		if okStart && okEnd && end < start {
			errs[domain.FieldKey(domain.SectionEducation, i, "end_year")] = "End year cannot be before start year"
		}
	}
	return errs
}

func validateExperience(items []domain.Experience) domain.ErrorMap {
	errs := domain.ErrorMap{}
	for i, item := range items {
		if item.Title != "" && item.Company == "" {
			errs[domain.FieldKey(domain.SectionExperience, i, "company")] = "Company is required if job title is provided"
		}
		if item.StartDate == "" || item.EndDate == "" {
			continue
		}
		start, okStart := parseDate(item.StartDate)
		end, okEnd := parseDate(item.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs[domain.FieldKey(domain.SectionExperience, i, "end_date")] = "End date cannot be before start date"
		}
	}
	return errs
}

func validateProjects(items []domain.Project) domain.ErrorMap {
	errs := domain.ErrorMap{}
	for i, item := range items {
		if item.Title != "" && item.Description == "" {
			errs[domain.FieldKey(domain.SectionProjects, i, "description")] = "Description is required if project title is provided"
		}
		if item.Link != "" && !httpURLPattern.MatchString(item.Link) {
			errs[domain.FieldKey(domain.SectionProjects, i, "link")] = "Invalid project URL"
		}
	}
	return errs
}

func validateCertifications(items []domain.Certification) domain.ErrorMap {
	errs := domain.ErrorMap{}
	for i, item := range items {
		if item.Title != "" && item.Issuer == "" {
			errs[domain.FieldKey(domain.SectionCertifications, i, "issuer")] = "Issuer is required if certification title is provided"
		}
	}
	return errs
}

func validateSkills(skills []string) domain.ErrorMap {
	errs := domain.ErrorMap{}
	anyFilled := false
	for i, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed != "" {
			anyFilled = true
		}
		if strings.EqualFold(trimmed, "skills") || utf8.RuneCountInString(trimmed) < minSkillLength {
			errs[domain.SkillKey(i)] = "Skill is too generic or short; please be more specific"
		}
	}
	if !anyFilled {
		errs[domain.SkillsErrorKey] = "At least one skill is required"
	}
	return errs
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// parseYear reads the leading integer of s, so "2020 (expected)" still compares.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && ((s[end] >= '0' && s[end] <= '9') || (end == 0 && (s[0] == '-' || s[0] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

// parseDate accepts the layouts a date input produces. Unparseable values never
// produce an ordering error.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
