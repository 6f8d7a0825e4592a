package wizard

import (
	"reflect"
	"testing"

	"resumekit/internal/domain"
)

func TestValidateStepIsPure(t *testing.T) {
	t.Parallel()

	d := domain.NewProfileDraft()
	d.Phone = "12"
	d.Education = []domain.Education{{Institution: "MIT", StartYear: "2020", EndYear: "2018"}}
	d.Skills = []string{"x", "skills"}
	before := d.Clone()

	for _, info := range Steps() {
		first := ValidateStep(d, info.Step)
		second := ValidateStep(d, info.Step)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: results differ: %v vs %v", info.Title, first, second)
		}
	}
	if !reflect.DeepEqual(d, before) {
		t.Fatal("ValidateStep mutated the draft")
	}
}

func TestValidateBasicDetailsRequiredFields(t *testing.T) {
	t.Parallel()

	errs := ValidateStep(domain.NewProfileDraft(), StepBasicDetails)
	if got, want := errs.Keys(), []string{"full_name", "phone"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
}

func TestValidateBasicDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(d *domain.ProfileDraft)
		wantKey string
		wantMsg string
	}{
		{name: "short phone", mutate: func(d *domain.ProfileDraft) { d.Phone = "123" }, wantKey: "phone", wantMsg: "Invalid phone number format"},
		{name: "long phone", mutate: func(d *domain.ProfileDraft) { d.Phone = "1234567890123456" }, wantKey: "phone", wantMsg: "Invalid phone number format"},
		{name: "blank phone", mutate: func(d *domain.ProfileDraft) { d.Phone = "   " }, wantKey: "phone", wantMsg: "Phone number is required"},
		{name: "blank name", mutate: func(d *domain.ProfileDraft) { d.FullName = "  " }, wantKey: "full_name", wantMsg: "Full name is required"},
		{name: "linkedin host", mutate: func(d *domain.ProfileDraft) { d.LinkedIn = "https://example.com/in/ada" }, wantKey: "linkedin", wantMsg: "Invalid LinkedIn URL"},
		{name: "github scheme", mutate: func(d *domain.ProfileDraft) { d.GitHub = "github.com/ada" }, wantKey: "github", wantMsg: "Invalid GitHub URL"},
		{name: "website scheme", mutate: func(d *domain.ProfileDraft) { d.Website = "ftp://ada.dev" }, wantKey: "website", wantMsg: "Invalid website URL"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := validBasics()
			tt.mutate(&d)
			errs := ValidateStep(d, StepBasicDetails)
			if len(errs) != 1 || errs[tt.wantKey] != tt.wantMsg {
				t.Fatalf("errors = %v, want only %s=%q", errs, tt.wantKey, tt.wantMsg)
			}
		})
	}
}

func TestValidateBasicDetailsAcceptsFormattedPhoneAndProfiles(t *testing.T) {
	t.Parallel()

	d := validBasics()
	d.Phone = "+1-555-123-4567"
	d.LinkedIn = "https://www.linkedin.com/in/ada"
	d.GitHub = "http://github.com/ada"
	d.Website = "https://ada.dev"
	if errs := ValidateStep(d, StepBasicDetails); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateEducation(t *testing.T) {
	t.Parallel()

	d := domain.NewProfileDraft()
	d.Education = []domain.Education{
		{Institution: "MIT", StartYear: "2020", EndYear: "2018"},
		{StartYear: "2010", EndYear: "2014"},
		{StartYear: "soon", EndYear: "2014"},
	}
	errs := ValidateStep(d, StepEducation)
	want := domain.ErrorMap{
		"education_0_certificate_level": "Degree is required if institution is provided",
		"education_0_end_year":          "End year cannot be before start year",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errors = %v, want %v", errs, want)
	}
}

func TestValidateExperience(t *testing.T) {
	t.Parallel()

	d := domain.NewProfileDraft()
	d.Experience = []domain.Experience{
		{Title: "Engineer"},
		{Title: "Lead", Company: "Acme", StartDate: "2021-05-01", EndDate: "2021-04-30"},
		{Title: "Lead", Company: "Acme", StartDate: "2021-05-01", EndDate: "2021-05-01"},
		{StartDate: "garbage", EndDate: "2021-05-01"},
	}
	errs := ValidateStep(d, StepExperience)
	want := domain.ErrorMap{
		"experience_0_company":  "Company is required if job title is provided",
		"experience_1_end_date": "End date cannot be before start date",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errors = %v, want %v", errs, want)
	}
}

func TestValidateProjectsAndCertifications(t *testing.T) {
	t.Parallel()

	d := domain.NewProfileDraft()
	d.Projects = []domain.Project{{Title: "resumekit", Link: "github.com/x"}, {Link: "https://ok.dev"}}
	d.Certifications = []domain.Certification{{Title: "CKA"}, {Issuer: "CNCF"}}

	projects := ValidateStep(d, StepProjects)
	wantProjects := domain.ErrorMap{
		"projects_0_description": "Description is required if project title is provided",
		"projects_0_link":        "Invalid project URL",
	}
	if !reflect.DeepEqual(projects, wantProjects) {
		t.Fatalf("project errors = %v, want %v", projects, wantProjects)
	}

	certs := ValidateStep(d, StepCertifications)
	if !reflect.DeepEqual(certs, domain.ErrorMap{"certifications_0_issuer": "Issuer is required if certification title is provided"}) {
		t.Fatalf("certification errors = %v", certs)
	}

	if errs := ValidateStep(d, StepAchievements); len(errs) != 0 {
		t.Fatalf("achievements should have no rules, got %v", errs)
	}
}

func TestValidateSkills(t *testing.T) {
	t.Parallel()

	empty := ValidateStep(domain.NewProfileDraft(), StepSkills)
	if empty[domain.SkillsErrorKey] == "" || !Blocking(empty) {
		t.Fatalf("empty skills should block, got %v", empty)
	}

	d := domain.NewProfileDraft()
	d.Skills = []string{"Go", " Skills ", "C"}
	errs := ValidateStep(d, StepSkills)
	if _, ok := errs[domain.SkillsErrorKey]; ok {
		t.Fatalf("skills_error should be absent: %v", errs)
	}
	if got, want := errs.Keys(), []string{"skills_1", "skills_2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if Blocking(errs) {
		t.Fatal("per-skill advisories must not block")
	}
}

func TestValidateAllCoversEveryStep(t *testing.T) {
	t.Parallel()

	d := domain.NewProfileDraft()
	d.Education[0].Institution = "MIT"
	d.Projects[0].Title = "x"
	errs := ValidateAll(d)
	for _, key := range []string{"full_name", "phone", "education_0_certificate_level", "projects_0_description", domain.SkillsErrorKey} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("missing %s in %v", key, errs)
		}
	}
}

func validBasics() domain.ProfileDraft {
	d := domain.NewProfileDraft()
	d.FullName = "Ada Lovelace"
	d.Phone = "+44 20 7946 0958"
	return d
}
