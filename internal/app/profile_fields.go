package app

import (
	"resumekit/internal/domain"
	"resumekit/internal/wizard"
)

type fieldSpec struct {
	key         string
	title       string
	placeholder string
}

const industryField = "industry"

var basicFieldSpecs = []fieldSpec{
	{key: "full_name", title: "Full name", placeholder: "Ada Lovelace"},
	{key: "phone", title: "Phone", placeholder: "+1 555 123 4567"},
	{key: "linkedin", title: "LinkedIn", placeholder: "https://linkedin.com/in/..."},
	{key: "github", title: "GitHub", placeholder: "https://github.com/..."},
	{key: "website", title: "Website", placeholder: "https://..."},
	{key: "country", title: "Country"},
	{key: "city", title: "City"},
}

var recordFieldSpecs = map[domain.Section][]fieldSpec{
	domain.SectionEducation: {
		{key: "institution", title: "Institution", placeholder: "University or school"},
		{key: "certificate_level", title: "Degree", placeholder: "BSc Computer Science"},
		{key: "start_year", title: "Start year", placeholder: "2018"},
		{key: "end_year", title: "End year", placeholder: "2022"},
	},
	domain.SectionExperience: {
		{key: "title", title: "Job title"},
		{key: "position", title: "Position", placeholder: "Full-time, contract, internship"},
		{key: "company", title: "Company"},
		{key: "start_date", title: "Start date", placeholder: "YYYY-MM-DD"},
		{key: "end_date", title: "End date", placeholder: "YYYY-MM-DD"},
		{key: "description", title: "Description"},
	},
	domain.SectionProjects: {
		{key: "title", title: "Project title"},
		{key: "description", title: "Description"},
		{key: "link", title: "Link", placeholder: "https://..."},
	},
	domain.SectionCertifications: {
		{key: "title", title: "Certification"},
		{key: "issuer", title: "Issuer"},
		{key: "issue_date", title: "Issue date", placeholder: "YYYY-MM-DD"},
		{key: "expiration_date", title: "Expiration date", placeholder: "YYYY-MM-DD"},
	},
	domain.SectionAchievements: {
		{key: "title", title: "Achievement"},
		{key: "description", title: "Description"},
		{key: "achieved_at", title: "Date", placeholder: "YYYY-MM-DD"},
	},
}

// stepFields lists the text fields shown for a step. Skills uses its own tag input.
func stepFields(step wizard.Step) []fieldSpec {
	if step == wizard.StepBasicDetails {
		return basicFieldSpecs
	}
	return recordFieldSpecs[step.Info().Section]
}

func industryOptions() []string {
	industries := domain.Industries()
	out := make([]string, 0, len(industries))
	for _, ind := range industries {
		out = append(out, ind.Value)
	}
	return out
}
