package domain

import (
	"sort"
	"strconv"
	"strings"
)

const SkillsErrorKey = "skills_error"

// ErrorMap maps a field key to a user-facing message. Scalar fields use their own
// name, record fields use {section}_{index}_{field}, skills use skills_{index}.
type ErrorMap map[string]string

func FieldKey(s Section, index int, field string) string {
	return recordPrefix(s, index) + field
}

func SkillKey(index int) string {
	return "skills_" + strconv.Itoa(index)
}

func recordPrefix(s Section, index int) string {
	return string(s) + "_" + strconv.Itoa(index) + "_"
}

func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m ErrorMap) Merge(other ErrorMap) {
	for k, v := range other {
		m[k] = v
	}
}

func (m ErrorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeleteRecord drops every key that belongs to the record at index. The trailing
// separator keeps education_1 from matching education_10.
func (m ErrorMap) DeleteRecord(s Section, index int) {
	prefix := recordPrefix(s, index)
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			delete(m, k)
		}
	}
}

// ShiftRecords moves keys of records after removed down by one index so they keep
// pointing at the same record once the list has been compacted. Keys of the removed
// record itself must already be gone.
func (m ErrorMap) ShiftRecords(s Section, removed int) {
	type move struct {
		from, to string
	}
	var moves []move
	for k := range m {
		index, rest, ok := splitIndexedKey(k, string(s))
		if !ok || index <= removed {
			continue
		}
		to := string(s) + "_" + strconv.Itoa(index-1)
		if rest != "" {
			to += "_" + rest
		}
		moves = append(moves, move{from: k, to: to})
	}
	values := make(map[string]string, len(moves))
	for _, mv := range moves {
		values[mv.from] = m[mv.from]
		delete(m, mv.from)
	}
	for _, mv := range moves {
		m[mv.to] = values[mv.from]
	}
}

// DeleteSkillErrors drops skills_error and every skills_{index} key.
func (m ErrorMap) DeleteSkillErrors() {
	delete(m, SkillsErrorKey)
	for k := range m {
		if _, _, ok := splitIndexedKey(k, string(SectionSkills)); ok {
			delete(m, k)
		}
	}
}

// splitIndexedKey parses {prefix}_{index}[_{rest}].
func splitIndexedKey(key, prefix string) (int, string, bool) {
	tail, ok := strings.CutPrefix(key, prefix+"_")
	if !ok {
		return 0, "", false
	}
	digits, rest, _ := strings.Cut(tail, "_")
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, "", false
	}
	return index, rest, true
}
