package docfmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation is the outcome of a validity check. Message is empty when
// Valid is true.
type Validation struct {
	Valid   bool
	Message string
	Err     *ParseError
}

func validation(err error) Validation {
	if err == nil {
		return Validation{Valid: true}
	}
	v := Validation{Message: err.Error()}
	errors.As(err, &v.Err)
	return v
}

// ValidateJSON checks that text is well-formed JSON.
func ValidateJSON(text string) Validation {
	_, err := parseJSON(strings.TrimSpace(text))
	return validation(err)
}

// ValidateXML checks that text is a well-formed XML document.
func ValidateXML(text string) Validation {
	_, err := readXMLDocument(strings.TrimSpace(text))
	return validation(err)
}

// ValidateYAML checks text against the full YAML grammar, not only the
// subset the converter reads.
func ValidateYAML(text string) Validation {
	text = strings.TrimSpace(text)
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return validation(yamlError(text, err))
	}
	return Validation{Valid: true}
}

// ValidateCSV checks that text reads as CSV.
func ValidateCSV(text string) Validation {
	_, err := parseCSV(strings.TrimSpace(text))
	return validation(err)
}

// Validate dispatches to the validator for f.
func Validate(f Format, text string) (Validation, error) {
	switch f {
	case JSON:
		return ValidateJSON(text), nil
	case XML:
		return ValidateXML(text), nil
	case YAML:
		return ValidateYAML(text), nil
	case CSV:
		return ValidateCSV(text), nil
	default:
		return Validation{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

var yamlLinePattern = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

func yamlError(text string, err error) *ParseError {
	msg := err.Error()
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return newLineError(YAML, text, m[2], line, 0)
	}
	return newParseError(YAML, text, strings.TrimPrefix(msg, "yaml: "), -1)
}
