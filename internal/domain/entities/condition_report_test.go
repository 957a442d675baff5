package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReportJSON = `{
  "garmentDescription": "White short-sleeved cotton t-shirt with a small chest logo",
  "personDescription": "Adult standing upright, arms relaxed, right hand in front of the torso",
  "bodySize": "M",
  "technicalPrompt": "Replace the long-sleeved sweater with the short-sleeved tee; keep the right hand in front",
  "stylingSuggestions": {
    "suggestedPants": "Slim dark denim",
    "suggestedShoes": "White leather sneakers",
    "suggestedShirt": "Open linen overshirt",
    "styleVibe": "Casual minimal"
  }
}`

func TestParseConditionReport(t *testing.T) {
	report, err := ParseConditionReport([]byte(validReportJSON))
	require.NoError(t, err)

	assert.Equal(t, "M", report.BodySize)
	assert.Equal(t, "Casual minimal", report.StylingSuggestions.StyleVibe)
	assert.Contains(t, report.TechnicalPrompt, "short-sleeved")
}

func TestParseConditionReport_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{
			name:    "malformed json",
			raw:     `{"garmentDescription": "tee"`,
			wantMsg: "not a valid condition report",
		},
		{
			name:    "empty object",
			raw:     `{}`,
			wantMsg: "garmentDescription is required",
		},
		{
			name: "snake case body size is not accepted",
			raw: `{"garmentDescription":"a","personDescription":"b","body_size":"M","technicalPrompt":"c",
				"stylingSuggestions":{"suggestedPants":"p","suggestedShoes":"s","suggestedShirt":"t","styleVibe":"v"}}`,
			wantMsg: "bodySize is required",
		},
		{
			name: "body size outside closed set",
			raw: `{"garmentDescription":"a","personDescription":"b","bodySize":"XL","technicalPrompt":"c",
				"stylingSuggestions":{"suggestedPants":"p","suggestedShoes":"s","suggestedShirt":"t","styleVibe":"v"}}`,
			wantMsg: "bodySize must be one of [S M L]",
		},
		{
			name: "blank technical prompt",
			raw: `{"garmentDescription":"a","personDescription":"b","bodySize":"S","technicalPrompt":"   ",
				"stylingSuggestions":{"suggestedPants":"p","suggestedShoes":"s","suggestedShirt":"t","styleVibe":"v"}}`,
			wantMsg: "technicalPrompt is required",
		},
		{
			name:    "missing styling block",
			raw:     `{"garmentDescription":"a","personDescription":"b","bodySize":"S","technicalPrompt":"c"}`,
			wantMsg: "stylingSuggestions",
		},
		{
			name: "partial styling block",
			raw: `{"garmentDescription":"a","personDescription":"b","bodySize":"L","technicalPrompt":"c",
				"stylingSuggestions":{"suggestedPants":"p","suggestedShoes":"","suggestedShirt":"t","styleVibe":"v"}}`,
			wantMsg: "stylingSuggestions.suggestedShoes is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseConditionReport([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConditionReport_ValidateNil(t *testing.T) {
	var report *ConditionReport
	assert.Error(t, report.Validate())
}
