package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

// StyleOption is one entry of the frame style picker.
type StyleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Class merges tailwind class lists, later lists winning on conflicts.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}
