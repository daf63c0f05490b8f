package engine

import (
	"errors"
	"testing"
)

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 7.5 ")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if v == nil || *v != 7.5 {
		t.Fatalf("got %v, want 7.5", v)
	}

	v, err = ParseValue("")
	if err != nil || v != nil {
		t.Fatalf("empty input: got %v, %v", v, err)
	}
}

func TestParseValueRejects(t *testing.T) {
	for _, in := range []string{"abc", "-1", "NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		v, err := ParseValue(in)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseValue(%q) = %v, %v; want ValidationError", in, v, err)
		}
		if verr.Field != "value" {
			t.Fatalf("ParseValue(%q) field = %q", in, verr.Field)
		}
	}
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency(" Weekly ")
	if err != nil || f != FrequencyWeekly {
		t.Fatalf("got %q, %v", f, err)
	}
	f, err = ParseFrequency("")
	if err != nil || f != FrequencyDaily {
		t.Fatalf("empty input: got %q, %v", f, err)
	}

	_, err = ParseFrequency("hourly")
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "frequency" {
		t.Fatalf("ParseFrequency(hourly) err = %v; want frequency ValidationError", err)
	}
}
