package kernel

import (
	"fmt"
	"sort"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Section is one garment piece of an order item. Values are always lower case.
type Section string

const (
	Shirt     Section = "shirt"
	Trouser   Section = "trouser"
	Dupatta   Section = "dupatta"
	Kurta     Section = "kurta"
	Lehenga   Section = "lehenga"
	Blouse    Section = "blouse"
	Choli     Section = "choli"
	Sharara   Section = "sharara"
	Gharara   Section = "gharara"
	Skirt     Section = "skirt"
	Jacket    Section = "jacket"
	Shawl     Section = "shawl"
	Cape      Section = "cape"
	Lining    Section = "lining"
	Pajama    Section = "pajama"
	Waistcoat Section = "waistcoat"
)

func knownSections() map[Section]struct{} {
	return map[Section]struct{}{
		Shirt: {}, Trouser: {}, Dupatta: {}, Kurta: {}, Lehenga: {}, Blouse: {},
		Choli: {}, Sharara: {}, Gharara: {}, Skirt: {}, Jacket: {}, Shawl: {},
		Cape: {}, Lining: {}, Pajama: {}, Waistcoat: {},
	}
}

// ParseSection trims and lower-cases raw before matching it against the known pieces.
//
// Example:
//
//	s, err := kernel.ParseSection(" Dupatta ") // kernel.Dupatta, nil
func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return "", errs.NewValueIsRequiredError("section")
	}
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// ParseSections parses every entry and drops duplicates, keeping first-seen order.
func ParseSections(raw []string) ([]Section, error) {
	out := make([]Section, 0, len(raw))
	seen := make(map[Section]struct{}, len(raw))
	for _, r := range raw {
		s, err := ParseSection(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

func (s Section) Validate() error {
	if _, ok := knownSections()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("section", fmt.Errorf("%q is not a known garment piece", string(s)))
	}
	return nil
}

func (s Section) String() string {
	return string(s)
}

// SortSections sorts in place and returns the slice.
func SortSections(sections []Section) []Section {
	sort.Slice(sections, func(i, j int) bool { return sections[i] < sections[j] })
	return sections
}

// SectionStrings converts sections to plain strings, e.g. for persistence.
func SectionStrings(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = string(s)
	}
	return out
}

// ContainsSection reports whether s is present in sections.
func ContainsSection(sections []Section, s Section) bool {
	for _, candidate := range sections {
		if candidate == s {
			return true
		}
	}
	return false
}
