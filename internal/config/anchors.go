package config

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ParseAnchorList parses a shell-style list of anchors such as
//
//	Save "Delete all=Removes every entry" 'Export=CSV or JSON'
//
// Each word is a label, optionally followed by "=" and the tip text. A word
// without a tip uses its label as the tip.
func ParseAnchorList(s string) ([]AnchorSpec, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse anchor list: %w", err)
	}
	if len(words) == 0 {
		return nil, nil
	}

	anchors := make([]AnchorSpec, 0, len(words))
	for i, word := range words {
		label, tip, found := strings.Cut(word, "=")
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("parse anchor list: entry %d (%q) has an empty label", i+1, word)
		}
		tip = strings.TrimSpace(tip)
		if !found || tip == "" {
			tip = label
		}
		anchors = append(anchors, AnchorSpec{Label: label, Tip: tip})
	}
	return anchors, nil
}
