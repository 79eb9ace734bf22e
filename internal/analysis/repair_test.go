package analysis

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRepairJSONValidPassthrough(t *testing.T) {
	// Valid JSON with comma-brace sequences inside strings must come back
	// byte-identical; repair only ever touches invalid input.
	in := `{"a": ",}", "b": [1, 2]}`
	if got := RepairJSON(in); got != in {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestRepairJSONTrailingCommas(t *testing.T) {
	in := `{"a": 1, "b": [1, 2,], }`
	got := RepairJSON(in)
	if !json.Valid([]byte(got)) {
		t.Fatalf("expected valid JSON after repair, got %q", got)
	}
	if got != `{"a": 1, "b": [1, 2] }` {
		t.Fatalf("unexpected repair: %q", got)
	}
}

func TestRepairJSONNestedTrailingCommas(t *testing.T) {
	in := "{\"a\": {\"b\": [1,\n],\n},\n}"
	got := RepairJSON(in)
	if !json.Valid([]byte(got)) {
		t.Fatalf("expected valid JSON after repair, got %q", got)
	}
}

func TestRepairJSONIdempotent(t *testing.T) {
	in := `{"a": 1,}`
	once := RepairJSON(in)
	if twice := RepairJSON(once); twice != once {
		t.Fatalf("repair not idempotent: %q vs %q", once, twice)
	}
}

func TestParseObjectStrictFirst(t *testing.T) {
	obj, err := parseObject(`{"skills": ["Go"]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := obj["skills"]; !ok {
		t.Fatalf("expected skills key, got %v", obj)
	}
}

func TestParseObjectRepairsTrailingComma(t *testing.T) {
	obj, err := parseObject(`{"skills": ["Go",],}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	skills, ok := obj["skills"].([]any)
	if !ok || len(skills) != 1 {
		t.Fatalf("expected one skill, got %v", obj["skills"])
	}
}

func TestParseObjectUnrepairable(t *testing.T) {
	_, err := parseObject(`{"a": }`)
	var repairErr *RepairError
	if !errors.As(err, &repairErr) {
		t.Fatalf("expected RepairError, got %v", err)
	}
	if Classify(err) != ErrorCodeRepair {
		t.Fatalf("expected %s, got %s", ErrorCodeRepair, Classify(err))
	}
}
