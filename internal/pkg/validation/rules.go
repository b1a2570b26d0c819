package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	EmailPattern = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`
	PhonePattern = `^\d{10}$`
)

// Length limits shared by registration, proposals and reports
const (
	NameMinLength          = 2
	NameMaxLength          = 100
	PasswordMinLength      = 8
	AdminPasswordMinLength = 6
	GroupNameMinLength     = 3
	ProjectTitleMinLength  = 5
	DescriptionMinLength   = 50
	ProposalSectionMin     = 30
	ReportContentMinLength = 10
	MeetingPurposeMin      = 3
	DocumentTitleMinLength = 3
	MarksMin               = 0
	MarksMax               = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// StringValidation checks a trimmed string against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation checks an integer against an inclusive range
type NumericValidation struct {
	Value int
	Min   *int
	Max   *int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = &min
	return v
}

func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = &max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != nil && v.Value < *v.Min {
		return false
	}
	if v.Max != nil && v.Value > *v.Max {
		return false
	}
	return true
}

// MinLength reports whether the trimmed value has at least min characters.
func MinLength(value string, min int) bool {
	return NewStringValidation(value).WithMinLength(min).Validate()
}

// IsEmail reports whether value looks like an email address.
func IsEmail(value string) bool {
	return NewStringValidation(value).WithPattern(CompiledPatterns.Email).Validate()
}

// IsPhone reports whether value is a 10 digit phone number.
func IsPhone(value string) bool {
	return NewStringValidation(value).WithPattern(CompiledPatterns.Phone).Validate()
}

// IsMarks reports whether marks is within the 0..100 grading range.
func IsMarks(marks int) bool {
	return NewNumericValidation(marks).WithMin(MarksMin).WithMax(MarksMax).Validate()
}

// NormalizeSkills trims skills, drops empties and removes case-insensitive duplicates
// keeping the first spelling.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
