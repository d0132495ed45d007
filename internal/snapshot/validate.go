package snapshot

import (
	"encoding/json"
	"fmt"
)

// ErrorCode classifies an import rejection.
type ErrorCode string

const (
	ParseError          ErrorCode = "parse_error"
	MissingVersion      ErrorCode = "missing_version"
	VersionMismatch     ErrorCode = "version_mismatch"
	MissingField        ErrorCode = "missing_field"
	TypeError           ErrorCode = "type_error"
	InvalidSessionEntry ErrorCode = "invalid_session_entry"
)

// ValidationError is the structured reason an import was rejected. It is a
// result value, not an exception: import never partially applies.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Index   int       `json:"index,omitempty"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredProgressFields are checked in order; the first absent one is
// reported.
var requiredProgressFields = []string{"credits", "ownedComponents", "sessionHistory"}

// ValidateExport checks a backup file payload. Returns nil when the file is
// importable.
func ValidateExport(data []byte) *ValidationError {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationError{Code: ParseError, Message: "file is not valid JSON"}
	}

	version, ok := raw["version"].(string)
	if !ok || version == "" {
		return &ValidationError{Code: MissingVersion, Message: "file has no version tag"}
	}
	if version != CurrentVersion {
		return &ValidationError{
			Code:    VersionMismatch,
			Message: fmt.Sprintf("file version %q is not supported (expected %q)", version, CurrentVersion),
		}
	}

	progress, ok := raw["userProgress"].(map[string]any)
	if !ok {
		return &ValidationError{Code: MissingField, Field: "userProgress", Message: "userProgress is missing"}
	}

	if verr := validateProgressShape(progress); verr != nil {
		return verr
	}

	if archRaw, present := raw["architecture"]; present {
		arch, ok := archRaw.(map[string]any)
		if !ok {
			return &ValidationError{Code: TypeError, Field: "architecture", Message: "architecture must be an object"}
		}
		for _, field := range []string{"placedComponents", "connections"} {
			if v, present := arch[field]; present {
				if _, ok := v.([]any); !ok {
					return &ValidationError{Code: TypeError, Field: field, Message: field + " must be a list"}
				}
			}
		}
	}

	return nil
}

// ValidateCloudState is the looser structural check for the sync payload:
// required field presence and type, no version tag.
func ValidateCloudState(data []byte) *ValidationError {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationError{Code: ParseError, Message: "state is not valid JSON"}
	}
	return validateProgressShape(raw)
}

func validateProgressShape(m map[string]any) *ValidationError {
	for _, field := range requiredProgressFields {
		if _, present := m[field]; !present {
			return &ValidationError{Code: MissingField, Field: field, Message: field + " is missing"}
		}
	}

	if _, ok := m["credits"].(float64); !ok {
		return &ValidationError{Code: TypeError, Field: "credits", Message: "credits must be a number"}
	}
	if _, ok := m["ownedComponents"].([]any); !ok {
		return &ValidationError{Code: TypeError, Field: "ownedComponents", Message: "ownedComponents must be a list"}
	}
	sessions, ok := m["sessionHistory"].([]any)
	if !ok {
		return &ValidationError{Code: TypeError, Field: "sessionHistory", Message: "sessionHistory must be a list"}
	}

	for i, entry := range sessions {
		session, ok := entry.(map[string]any)
		if !ok {
			return &ValidationError{
				Code: InvalidSessionEntry, Index: i,
				Message: fmt.Sprintf("session %d is not an object", i),
			}
		}
		for _, field := range []string{"id", "startTime", "duration"} {
			if _, present := session[field]; !present {
				return &ValidationError{
					Code: InvalidSessionEntry, Index: i,
					Message: fmt.Sprintf("session %d is missing %s", i, field),
				}
			}
		}
	}

	// Architecture fields may ride along in the cloud payload; when present
	// they must be list-typed.
	for _, field := range []string{"placedComponents", "connections"} {
		if v, present := m[field]; present && v != nil {
			if _, ok := v.([]any); !ok {
				return &ValidationError{Code: TypeError, Field: field, Message: field + " must be a list"}
			}
		}
	}

	return nil
}
