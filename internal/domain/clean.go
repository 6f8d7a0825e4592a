package domain

import "strings"

// Cleaned returns the payload sent to the profile endpoint. Skills are trimmed and
// blank entries dropped. Record fields holding "" are omitted on encode, and records
// with no remaining field are dropped. Scalars pass through untouched.
func (d ProfileDraft) Cleaned() ProfileDraft {
	out := d.Clone()
	out.Skills = cleanSkills(d.Skills)
	out.Education = keepNonEmpty(out.Education)
	out.Experience = keepNonEmpty(out.Experience)
	out.Projects = keepNonEmpty(out.Projects)
	out.Certifications = keepNonEmpty(out.Certifications)
	out.Achievements = keepNonEmpty(out.Achievements)
	return out
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func keepNonEmpty[T any, P interface {
	*T
	Record
}](in []T) []T {
	out := make([]T, 0, len(in))
	for i := range in {
		if P(&in[i]).Empty() {
			continue
		}
		out = append(out, in[i])
	}
	return out
}
