package domain

import "strings"

type Industry struct {
	Value string
	Label string
}

func Industries() []Industry {
	return []Industry{
		{Value: "tech", Label: "Technology"},
		{Value: "health", Label: "Healthcare"},
		{Value: "engineering", Label: "Engineering"},
		{Value: "finance", Label: "Finance"},
		{Value: "", Label: "Other"},
	}
}

func IndustryLabel(value string) string {
	for _, ind := range Industries() {
		if ind.Value == value {
			return ind.Label
		}
	}
	return value
}

var skillSuggestions = map[string][]string{
	"tech":        {"JavaScript", "Python", "React", "Node.js", "SQL", "AWS", "Docker", "TypeScript", "Git", "GraphQL"},
	"health":      {"Patient Care", "Medical Coding", "EMR Systems", "Clinical Research", "HIPAA Compliance", "Nursing", "Pharmacy Operations", "Medical Billing"},
	"engineering": {"CAD", "AutoCAD", "SolidWorks", "Structural Analysis", "Project Management", "MATLAB", "Finite Element Analysis", "Lean Manufacturing"},
	"finance":     {"Financial Modeling", "Risk Management", "Accounting", "Excel", "QuickBooks", "Financial Analysis", "Budgeting", "Tax Preparation"},
	"":            {"Communication", "Teamwork", "Problem Solving", "Leadership", "Time Management"},
}

// SkillSuggestions falls back to the general list for unknown industries.
func SkillSuggestions(industry string) []string {
	list, ok := skillSuggestions[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		list = skillSuggestions[""]
	}
	return append([]string(nil), list...)
}
