package jobposts

import (
	"regexp"
	"strings"
)

// FieldDetection flags which job post details a prompt appears to mention.
// It is advisory only and never gates a request.
type FieldDetection struct {
	HasRole         bool `json:"hasRole"`
	HasExperience   bool `json:"hasExperience"`
	HasSkills       bool `json:"hasSkills"`
	HasCompensation bool `json:"hasCompensation"`
	HasLocation     bool `json:"hasLocation"`
}

// ChecklistItem is one row of the prompt-assistant checklist.
type ChecklistItem struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

var (
	rolePattern         = regexp.MustCompile(`hiring|need|looking for|role|position|title|developer|engineer|manager|designer|lead|analyst|specialist|officer|director|vp|consultant|admin`)
	experiencePattern   = regexp.MustCompile(`year|exp|senior|junior|entry|level|background|track record|history|fresh`)
	skillsPattern       = regexp.MustCompile(`skill|proficien|stack|tool|know|able to|familiar|expert|mastery|technolog|framework|language`)
	compensationPattern = regexp.MustCompile(`\$|salary|pay|rate|comp|benefit|bonus|equity|stock|wage|budget|per hour|annual`)
	locationPattern     = regexp.MustCompile(`remote|hybrid|site|office|locat|city|country|based in|relocat`)
)

// Detect evaluates every category against the lowercased prompt. Matching is
// substring based, so "lead" also fires on "leadership".
func Detect(prompt string) FieldDetection {
	text := strings.ToLower(prompt)
	return FieldDetection{
		HasRole:         rolePattern.MatchString(text),
		HasExperience:   experiencePattern.MatchString(text),
		HasSkills:       skillsPattern.MatchString(text),
		HasCompensation: compensationPattern.MatchString(text),
		HasLocation:     locationPattern.MatchString(text),
	}
}

// Checklist returns the detection as labelled rows in display order.
func (d FieldDetection) Checklist() []ChecklistItem {
	return []ChecklistItem{
		{Label: "Job Title", Active: d.HasRole},
		{Label: "Experience Level", Active: d.HasExperience},
		{Label: "Key Skills", Active: d.HasSkills},
		{Label: "Compensation", Active: d.HasCompensation},
		{Label: "Location/Remote", Active: d.HasLocation},
	}
}

// Complete reports whether every category was detected.
func (d FieldDetection) Complete() bool {
	return d.HasRole && d.HasExperience && d.HasSkills && d.HasCompensation && d.HasLocation
}
