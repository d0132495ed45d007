package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExportRejectsMalformedJSON(t *testing.T) {
	verr := ValidateExport([]byte("{not json"))
	require.NotNil(t, verr)
	assert.Equal(t, ParseError, verr.Code)
}

func TestValidateExportVersionChecks(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		code    ErrorCode
	}{
		{"no version", `{"userProgress":{}}`, MissingVersion},
		{"empty version", `{"version":"","userProgress":{}}`, MissingVersion},
		{"version wrong type", `{"version":1,"userProgress":{}}`, MissingVersion},
		{"older version", `{"version":"0.9.0","userProgress":{}}`, VersionMismatch},
		{"newer version", `{"version":"2.0.0","userProgress":{}}`, VersionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateExport([]byte(tt.payload))
			require.NotNil(t, verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestValidateExportMissingProgressFields(t *testing.T) {
	// The first absent required field is the one reported.
	verr := ValidateExport([]byte(`{"version":"1.0.0","userProgress":{}}`))
	require.NotNil(t, verr)
	assert.Equal(t, MissingField, verr.Code)
	assert.Equal(t, "credits", verr.Field)

	verr = ValidateExport([]byte(`{"version":"1.0.0","userProgress":{"credits":10}}`))
	require.NotNil(t, verr)
	assert.Equal(t, MissingField, verr.Code)
	assert.Equal(t, "ownedComponents", verr.Field)

	verr = ValidateExport([]byte(`{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":[]}}`))
	require.NotNil(t, verr)
	assert.Equal(t, MissingField, verr.Code)
	assert.Equal(t, "sessionHistory", verr.Field)
}

func TestValidateExportNoProgressBlock(t *testing.T) {
	verr := ValidateExport([]byte(`{"version":"1.0.0"}`))
	require.NotNil(t, verr)
	assert.Equal(t, MissingField, verr.Code)
	assert.Equal(t, "userProgress", verr.Field)
}

func TestValidateExportFieldTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			"credits string",
			`{"version":"1.0.0","userProgress":{"credits":"ten","ownedComponents":[],"sessionHistory":[]}}`,
			"credits",
		},
		{
			"owned not a list",
			`{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":{},"sessionHistory":[]}}`,
			"ownedComponents",
		},
		{
			"history not a list",
			`{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":[],"sessionHistory":"none"}}`,
			"sessionHistory",
		},
		{
			"architecture placed not a list",
			`{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":[],"sessionHistory":[]},"architecture":{"placedComponents":{}}}`,
			"placedComponents",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateExport([]byte(tt.payload))
			require.NotNil(t, verr)
			assert.Equal(t, TypeError, verr.Code)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateExportSessionEntries(t *testing.T) {
	payload := `{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":[],"sessionHistory":[
		{"id":"s0","startTime":"2025-03-10T09:00:00Z","duration":1500},
		{"id":"s1","startTime":"2025-03-10T10:00:00Z"}
	]}}`
	verr := ValidateExport([]byte(payload))
	require.NotNil(t, verr)
	assert.Equal(t, InvalidSessionEntry, verr.Code)
	assert.Equal(t, 1, verr.Index)
	assert.Contains(t, verr.Message, "duration")

	verr = ValidateExport([]byte(`{"version":"1.0.0","userProgress":{"credits":10,"ownedComponents":[],"sessionHistory":[42]}}`))
	require.NotNil(t, verr)
	assert.Equal(t, InvalidSessionEntry, verr.Code)
	assert.Equal(t, 0, verr.Index)
}

func TestValidateCloudStateSkipsVersion(t *testing.T) {
	payload := `{"credits":5,"ownedComponents":["cdn"],"sessionHistory":[]}`
	assert.Nil(t, ValidateCloudState([]byte(payload)))
}

func TestApplyCloudStateNormalizes(t *testing.T) {
	payload := `{"credits":-20,"currentStreak":-1,"ownedComponents":["cdn"],"sessionHistory":[
		{"id":"s1","startTime":"2025-03-10T09:00:00Z","duration":1500,"completed":true}
	]}`
	restored, verr := ApplyCloudState([]byte(payload))
	require.Nil(t, verr)

	assert.Equal(t, 0, restored.Progress.Credits)
	assert.Equal(t, 0, restored.Progress.CurrentStreak)
	assert.Equal(t, 1, restored.Progress.SessionsCompleted)
	assert.Equal(t, 1500, restored.Progress.TotalSessionTime)
	assert.NotNil(t, restored.PlacedComponents)
	assert.NotNil(t, restored.Connections)
	assert.Empty(t, restored.PlacedComponents)
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{Code: MissingVersion, Message: "file has no version tag"}
	assert.EqualError(t, verr, "file has no version tag")
}
