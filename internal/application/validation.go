package application

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"pyxidust/internal/domain"
)

const (
	// MaxDescriptionLength bounds a project description
	MaxDescriptionLength = 50
	// MaxNameLength bounds a project name
	MaxNameLength = 15

	specialCharacters = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "fullSerial" -> "full serial")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"fullSerial":   "full serial",
		"counterFile":  "counter file",
		"templateSize": "template size",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateDescription rejects digits, special characters and long text
func ValidateDescription(description string) error {
	switch {
	case strings.IndexFunc(description, unicode.IsDigit) >= 0:
		return &ValidationError{Field: "description", Message: "description does not accept numbers"}
	case strings.ContainsAny(description, specialCharacters):
		return &ValidationError{Field: "description", Message: "description does not accept special characters"}
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength),
		}
	}
	return nil
}

// ValidateName rejects whitespace, special characters and long names.
// Names become part of folder and artifact names.
func ValidateName(name string) error {
	switch {
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return &ValidationError{Field: "name", Message: "name does not accept spaces"}
	case strings.ContainsAny(name, specialCharacters):
		return &ValidationError{Field: "name", Message: "name does not accept special characters"}
	case utf8.RuneCountInString(name) > MaxNameLength:
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must be %d characters or less", MaxNameLength),
		}
	}
	return nil
}

// ValidateTemplate checks a template size against the allowed set
func ValidateTemplate(template string, sizes []string) error {
	if !slices.Contains(sizes, template) {
		return &ValidationError{
			Field:   "template",
			Message: fmt.Sprintf("invalid template size for %s", template),
		}
	}
	return nil
}

// ValidateProject runs the project input checks in order:
// description, then name, then template.
func ValidateProject(description, name, template string, sizes []string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	if err := ValidateRequired("name", name); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	return ValidateTemplate(template, sizes)
}

// ValidateSerial wraps domain validation for adapters
func ValidateSerial(serial string) error {
	return domain.ValidateSerial(serial)
}
