package instance

import (
	"fmt"
	"strings"
)

// Kind is the declared type of a schema field
type Kind int

const (
	String Kind = iota
	Integer
	StringSlice
	// Any only requires the key to be present, the value is an opaque blob
	Any
)

// Field is one declared instance attribute
type Field struct {
	Key  string
	Kind Kind
}

// schema is the closed attribute surface of an instance,
// accessors exist for exactly these keys and nothing else
var schema = []Field{
	{"instance_id", String},
	{"instance_index", Integer},
	{"application_id", Integer},
	{"application_version", String},
	{"application_name", String},
	{"application_uris", StringSlice},
	{"application_users", StringSlice},
	{"droplet_sha1", String},
	{"droplet_file", String},
	{"droplet_uri", String},
	{"runtime_name", String},
	{"framework_name", String},
	{"limits", Any},
	{"environment", Any},
	{"services", Any},
	{"flapping", Any},
	{"debug", Any},
	{"console", Any},
}

// Schema returns the declared attribute shape
func Schema() []Field {
	return schema
}

// renames maps raw job-specification keys to canonical attribute keys
var renames = map[string]string{
	"index":          "instance_index",
	"droplet":        "application_id",
	"version":        "application_version",
	"name":           "application_name",
	"uris":           "application_uris",
	"users":          "application_users",
	"sha1":           "droplet_sha1",
	"executableFile": "droplet_file",
	"executableUri":  "droplet_uri",
	"runtime":        "runtime_name",
	"framework":      "framework_name",
	"env":            "environment",
}

// Translate renames raw job-specification keys into canonical attribute keys.
// It is a pure renaming, no validation happens here.
func Translate(raw map[string]interface{}) map[string]interface{} {
	attributes := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if canonical, ok := renames[key]; ok {
			attributes[canonical] = value
		} else {
			attributes[key] = value
		}
	}
	return attributes
}

// SchemaViolationError reports every missing or mistyped attribute of a
// job specification, not just the first one found
type SchemaViolationError struct {
	Violations []string
}

func (e *SchemaViolationError) Error() string {
	return "schema violation: " + strings.Join(e.Violations, ", ")
}

// Validate checks canonical attributes against the schema and collects
// the full violation list
func Validate(attributes map[string]interface{}) error {
	violations := []string{}
	for _, field := range schema {
		value, existed := attributes[field.Key]
		if !existed {
			violations = append(violations, fmt.Sprintf("missing field %s", field.Key))
			continue
		}
		switch field.Kind {
		case String:
			if _, ok := value.(string); !ok {
				violations = append(violations, fmt.Sprintf("field %s is not a string", field.Key))
			}
		case Integer:
			if _, ok := toInt(value); !ok {
				violations = append(violations, fmt.Sprintf("field %s is not an integer", field.Key))
			}
		case StringSlice:
			if _, ok := toStringSlice(value); !ok {
				violations = append(violations, fmt.Sprintf("field %s is not a string list", field.Key))
			}
		case Any:
			// presence is enough
		}
	}
	if len(violations) > 0 {
		return &SchemaViolationError{Violations: violations}
	}
	return nil
}

// toInt accepts the integer shapes a generic job specification can carry,
// json decoding hands numbers over as float64
func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
