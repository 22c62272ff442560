package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/eugenenazirov/confstack/internal/environment"
	"github.com/eugenenazirov/confstack/internal/merge"
)

func strPtr(s string) *string { return &s }

func TestValidateRequiredKeys(t *testing.T) {
	s := Schema{
		"SERVICE_URL": {Type: TypeURL, RequiredIn: []environment.Environment{environment.Production}},
		"API_KEY":     {Type: TypeBase64Secret, RequiredIn: []environment.Environment{environment.Production}},
		"LOG_LEVEL":   {Type: TypeString, Default: strPtr("info")},
	}

	t.Run("not required in development", func(t *testing.T) {
		result := Validate(merge.FromMap(nil, "test"), environment.Development, s)
		if !result.Valid() {
			t.Fatalf("expected valid result, got %v", result.Errors)
		}
		if got := result.Config.Get("LOG_LEVEL"); got != "info" {
			t.Fatalf("expected default materialized, got %q", got)
		}
	})

	t.Run("all missing keys reported in one pass", func(t *testing.T) {
		result := Validate(merge.FromMap(nil, "test"), environment.Production, s)
		if result.Valid() {
			t.Fatalf("expected invalid result")
		}
		if len(result.Errors) != 2 {
			t.Fatalf("expected 2 errors, got %d: %v", len(result.Errors), result.Errors)
		}
		// Errors are ordered by key.
		if result.Errors[0].Key != "API_KEY" || result.Errors[1].Key != "SERVICE_URL" {
			t.Fatalf("unexpected error keys: %v, %v", result.Errors[0].Key, result.Errors[1].Key)
		}
		for _, err := range result.Errors {
			if err.Kind != KindMissingRequiredKey {
				t.Fatalf("expected missing_required_key, got %s", err.Kind)
			}
		}
	})

	t.Run("default satisfies requirement", func(t *testing.T) {
		withDefault := Schema{
			"SERVICE_URL": {
				Type:       TypeURL,
				RequiredIn: []environment.Environment{environment.Production},
				Default:    strPtr("https://svc.example.com"),
			},
		}
		result := Validate(merge.FromMap(nil, "test"), environment.Production, withDefault)
		if !result.Valid() {
			t.Fatalf("expected valid result, got %v", result.Errors)
		}
		if got := result.Config.Get("SERVICE_URL"); got != "https://svc.example.com" {
			t.Fatalf("expected default value, got %q", got)
		}
	})
}

func TestValidateRejectsMistypedDefaults(t *testing.T) {
	s := Schema{
		"RETRIES": {Type: TypeInt, Default: strPtr("abc")},
	}

	result := Validate(merge.FromMap(nil, "test"), environment.Development, s)
	if result.Valid() {
		t.Fatalf("expected validation to fail for a non-integer default")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	err := result.Errors[0]
	if err.Kind != KindTypeMismatch || err.Key != "RETRIES" {
		t.Fatalf("unexpected error: %v", err)
	}

	// A value supplied by a layer still wins over the broken default.
	result = Validate(merge.FromMap(map[string]string{"RETRIES": "3"}, "env"), environment.Development, s)
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
}

func TestValidateRedactsMistypedSecretDefault(t *testing.T) {
	s := Schema{
		"API_KEY": {Type: TypeBase64Secret, Default: strPtr("%%%")},
	}

	result := Validate(merge.FromMap(nil, "test"), environment.Development, s)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Value != Redacted {
		t.Fatalf("expected redacted value, got %q", result.Errors[0].Value)
	}
}

func TestValidateTypes(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		value string
		ok    bool
	}{
		{"string anything", TypeString, "whatever", true},
		{"bool true", TypeBool, "true", true},
		{"bool yes", TypeBool, "YES", true},
		{"bool off", TypeBool, "off", true},
		{"bool invalid", TypeBool, "maybe", false},
		{"int valid", TypeInt, "42", true},
		{"int padded", TypeInt, " 42 ", true},
		{"int invalid", TypeInt, "4.2", false},
		{"url valid", TypeURL, "https://example.com/path", true},
		{"url redis scheme", TypeURL, "redis://localhost:6379", true},
		{"url missing scheme", TypeURL, "example.com", false},
		{"url garbage", TypeURL, "://nope", false},
		{"base64 padded", TypeBase64Secret, "c2VjcmV0", true},
		{"base64 raw", TypeBase64Secret, "c2VjcmV0cw", true},
		{"base64 invalid", TypeBase64Secret, "not base64!!", false},
		{"base64 empty", TypeBase64Secret, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Schema{"K": {Type: tc.typ}}
			cfg := merge.FromMap(map[string]string{"K": tc.value}, "test")

			result := Validate(cfg, environment.Development, s)
			if tc.ok && !result.Valid() {
				t.Fatalf("expected valid, got %v", result.Errors)
			}
			if !tc.ok {
				if result.Valid() {
					t.Fatalf("expected type mismatch for %q", tc.value)
				}
				if result.Errors[0].Kind != KindTypeMismatch {
					t.Fatalf("expected type_mismatch, got %s", result.Errors[0].Kind)
				}
				if result.Errors[0].Expected != tc.typ {
					t.Fatalf("expected error to name type %s, got %s", tc.typ, result.Errors[0].Expected)
				}
			}
		})
	}
}

func TestValidateRedactsSecretValues(t *testing.T) {
	s := Schema{
		"SECRET": {Type: TypeBase64Secret},
		"TOKEN":  {Type: TypeInt, Secret: true},
	}
	cfg := merge.FromMap(map[string]string{
		"SECRET": "!!definitely not base64!!",
		"TOKEN":  "hunter2",
	}, "test")

	result := Validate(cfg, environment.Production, s)
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}
	for _, err := range result.Errors {
		if err.Value != Redacted {
			t.Fatalf("secret value leaked into error: %q", err.Value)
		}
		if strings.Contains(err.Error(), "hunter2") || strings.Contains(err.Error(), "definitely") {
			t.Fatalf("secret value leaked into message: %q", err.Error())
		}
	}
}

func TestValidatePassesUnknownKeys(t *testing.T) {
	cfg := merge.FromMap(map[string]string{"FUTURE_KEY": "anything at all"}, "test")

	result := Validate(cfg, environment.Development, Schema{})
	if !result.Valid() {
		t.Fatalf("unknown keys must pass through, got %v", result.Errors)
	}
	if got := result.Config.Get("FUTURE_KEY"); got != "anything at all" {
		t.Fatalf("unknown key lost in validation: %q", got)
	}
}

// For any number of required keys all absent, validation reports exactly one
// missing_required_key error per key and masks none of them.
func TestValidateCompleteness_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every missing required key is reported", prop.ForAll(
		func(numRequired int) bool {
			s := Schema{}
			for i := 0; i < numRequired; i++ {
				key := fmt.Sprintf("REQUIRED_%d", i)
				s[key] = Rule{
					Type:       TypeString,
					RequiredIn: []environment.Environment{environment.Production},
				}
			}

			result := Validate(merge.FromMap(nil, "test"), environment.Production, s)
			if numRequired == 0 {
				return result.Valid()
			}
			return !result.Valid() && len(result.Errors) == numRequired
		},
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t)
}
