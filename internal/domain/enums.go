package domain

import (
	"fmt"
	"strings"
)

type DegreeType string

const (
	DegreeUndecided DegreeType = ""
	DegreeMajor     DegreeType = "major"
	DegreeMinor     DegreeType = "minor"
)

// ParseDegreeType accepts "major", "minor" or an empty string (undecided).
func ParseDegreeType(s string) (DegreeType, error) {
	switch DegreeType(strings.ToLower(strings.TrimSpace(s))) {
	case DegreeMajor:
		return DegreeMajor, nil
	case DegreeMinor:
		return DegreeMinor, nil
	case DegreeUndecided:
		return DegreeUndecided, nil
	}
	return DegreeUndecided, fmt.Errorf("degree type %q must be %q or %q", s, DegreeMajor, DegreeMinor)
}

// Decided reports whether a degree type has been chosen.
func (d DegreeType) Decided() bool {
	return d == DegreeMajor || d == DegreeMinor
}

// Category IDs referenced outside the requirements data.
const (
	CategoryIntro            = "intro"
	CategoryDCElective       = "dcElective"
	CategoryDAElective       = "daElective"
	CategoryGeneralElectives = "generalElectives"
)

// FlexibleAssignments is the canonical set of category IDs a flexible course
// may be assigned to.
var FlexibleAssignments = map[string]bool{
	CategoryDCElective:       true,
	CategoryDAElective:       true,
	CategoryGeneralElectives: true,
}

type CreditType string

const (
	CreditTransfer   CreditType = "transfer"
	CreditAP         CreditType = "ap"
	CreditDualCredit CreditType = "dual_credit"
	CreditWaiver     CreditType = "waiver"
	CreditOther      CreditType = "other"
)

// ValidCreditTypes is the canonical set of accepted special credit types.
var ValidCreditTypes = map[CreditType]bool{
	CreditTransfer: true, CreditAP: true, CreditDualCredit: true,
	CreditWaiver: true, CreditOther: true,
}
