package models

import "strings"

// NeutralForm is used when a team has no recorded results
const NeutralForm FormRecord = "DDDDD"

// FormRecord is a sequence of W/D/L results, most recent last
type FormRecord string

// Recent returns the last n results
func (f FormRecord) Recent(n int) FormRecord {
	if n <= 0 {
		return ""
	}
	if len(f) <= n {
		return f
	}
	return f[len(f)-n:]
}

// OrNeutral returns the neutral form when f is empty
func (f FormRecord) OrNeutral() FormRecord {
	if strings.TrimSpace(string(f)) == "" {
		return NeutralForm
	}
	return FormRecord(strings.ToUpper(strings.TrimSpace(string(f))))
}
