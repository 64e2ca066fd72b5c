package chunking

import "strings"

// complexIndicators are phrases that mark a chunk as advanced clinical
// material.
var complexIndicators = []string{
	"differential diagnosis",
	"pathophysiology",
	"mechanism of action",
	"clinical correlation",
	"diagnostic criteria",
	"treatment algorithm",
	"clinical manifestations",
	"therapeutic approach",
}

// IsComplex reports whether chunk mentions any of the complex medical
// indicators, ignoring case.
func IsComplex(chunk string) bool {
	lower := strings.ToLower(chunk)
	for _, indicator := range complexIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
