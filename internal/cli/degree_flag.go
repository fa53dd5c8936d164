package cli

import (
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/spf13/pflag"
)

// degreeValue is a pflag.Value accepting "major" or "minor".
type degreeValue struct {
	target *domain.DegreeType
}

var _ pflag.Value = (*degreeValue)(nil)

func newDegreeValue(target *domain.DegreeType) *degreeValue {
	return &degreeValue{target: target}
}

func (v *degreeValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *degreeValue) Set(s string) error {
	d, err := domain.ParseDegreeType(s)
	if err != nil {
		return err
	}
	*v.target = d
	return nil
}

func (v *degreeValue) Type() string { return "major|minor" }

func addDegreeFlag(flags *pflag.FlagSet, target *domain.DegreeType, usage string) {
	flags.Var(newDegreeValue(target), "degree", usage)
}
