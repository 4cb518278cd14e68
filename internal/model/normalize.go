package model

import (
	"strconv"
	"strings"
	"time"
)

// Normalization converts records of unknown shape (old data files, partial
// form input, bookmarklet payloads) into the canonical structs. Every
// function here is total: malformed values coerce to safe defaults, they
// never fail. Loading re-normalizes all records, so normalization doubles
// as the schema-migration path and must stay idempotent.

// NormalizeProblem converts a raw decoded JSON object into a canonical
// Problem, tolerating legacy shapes (status, owner, inline solution fields
// are handled by the store before this point).
func NormalizeProblem(raw map[string]any) Problem {
	p := Problem{
		ID:     asString(raw["id"]),
		Title:  asString(raw["title"]),
		Link:   strings.TrimSpace(asString(raw["link"])),
		Source: strings.TrimSpace(asString(raw["source"])),
		Notes:  strings.TrimSpace(asString(raw["notes"])),
	}

	// solved either comes through directly or derives from the legacy
	// status field ("done" meant solved).
	if v, ok := raw["solved"]; ok {
		p.Solved = asBool(v)
	} else {
		p.Solved = strings.EqualFold(strings.TrimSpace(asString(raw["status"])), "done")
	}

	p.UnsolvedStage = asString(raw["unsolved_stage"])
	p.UnsolvedCustomLabel = asString(raw["unsolved_custom_label"])
	p.Tags = asStringSlice(raw["tags"])

	if v, ok := raw["pass_count"]; ok && v != nil {
		if n, ok := asInt(v); ok && n >= 0 {
			p.PassCount = &n
		}
	}

	// assignee falls back to the legacy owner field.
	p.Assignee = asString(raw["assignee"])
	if p.Assignee == "" {
		p.Assignee = asString(raw["owner"])
	}

	p.CreatedAt = asTime(raw["created_at"])
	p.UpdatedAt = asTime(raw["updated_at"])

	return p.Canonical()
}

// Canonical re-asserts the problem invariants on an already-typed record.
// It is applied after every field merge so form input and normalized raw
// input land in the same shape.
func (p Problem) Canonical() Problem {
	p.Title = strings.TrimSpace(p.Title)
	p.Link = strings.TrimSpace(p.Link)
	p.Source = strings.TrimSpace(p.Source)
	p.Assignee = strings.TrimSpace(p.Assignee)
	p.Notes = strings.TrimSpace(p.Notes)
	p.UnsolvedCustomLabel = strings.TrimSpace(p.UnsolvedCustomLabel)

	if !ValidStage(p.UnsolvedStage) {
		p.UnsolvedStage = ""
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.PassCount != nil && *p.PassCount < 0 {
		p.PassCount = nil
	}

	// A solved problem carries no unsolved bookkeeping.
	if p.Solved {
		p.UnsolvedStage = ""
		p.UnsolvedCustomLabel = ""
	}

	return p
}

// NormalizeContest converts a raw decoded JSON object into a canonical
// Contest: total_problems clamps to [1, 26] and the problems list is
// rebuilt to exactly that length with positional letters.
func NormalizeContest(raw map[string]any) Contest {
	c := Contest{
		ID:      asString(raw["id"]),
		Name:    strings.TrimSpace(asString(raw["name"])),
		RankStr: strings.TrimSpace(asString(raw["rank_str"])),
		Summary: asString(raw["summary"]),
	}

	c.TotalProblems = 1
	if n, ok := asInt(raw["total_problems"]); ok {
		c.TotalProblems = n
	}

	rawProblems, _ := raw["problems"].([]any)
	for _, rp := range rawProblems {
		slot, _ := rp.(map[string]any)
		cp := ContestProblem{MyStatus: asString(slot["my_status"])}
		if n, ok := asInt(slot["pass_count"]); ok {
			cp.PassCount = n
		}
		if n, ok := asInt(slot["attempt_count"]); ok {
			cp.AttemptCount = n
		}
		c.Problems = append(c.Problems, cp)
	}

	c.CreatedAt = asTime(raw["created_at"])
	c.UpdatedAt = asTime(raw["updated_at"])

	return c.Canonical()
}

// Canonical clamps total_problems and reconciles the problems list to that
// exact length, preserving valid per-slot data and defaulting the rest.
func (c Contest) Canonical() Contest {
	c.Name = strings.TrimSpace(c.Name)
	c.RankStr = strings.TrimSpace(c.RankStr)

	if c.TotalProblems < 1 {
		c.TotalProblems = 1
	}
	if c.TotalProblems > MaxContestProblems {
		c.TotalProblems = MaxContestProblems
	}

	out := make([]ContestProblem, c.TotalProblems)
	for i := range out {
		out[i] = DefaultContestProblem(i)
		if i >= len(c.Problems) {
			continue
		}
		slot := c.Problems[i]
		if slot.PassCount > 0 {
			out[i].PassCount = slot.PassCount
		}
		if slot.AttemptCount > 0 {
			out[i].AttemptCount = slot.AttemptCount
		}
		if ValidStatus(slot.MyStatus) {
			out[i].MyStatus = slot.MyStatus
		}
	}
	c.Problems = out

	return c
}

// asString coerces scalar JSON values to a string; non-scalars yield "".
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// asBool accepts bools plus the usual string spellings.
func asBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return err == nil && b
	case float64:
		return x != 0
	default:
		return false
	}
}

// asInt coerces numbers and numeric strings to an int. The bool result
// reports whether the value was usable.
func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// asStringSlice flattens a JSON array into its string elements.
func asStringSlice(v any) []string {
	out := []string{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asTime parses RFC 3339 timestamps, returning the zero time on failure.
func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
