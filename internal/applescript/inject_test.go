package applescript

import (
	"strings"
	"testing"
)

func TestInjectString(t *testing.T) {
	code := `set theName to $name`
	out, err := Inject(code, map[string]Value{"name": String(`Bob "Bobby" Jones`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `set theName to "Bob \"Bobby\" Jones"`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInjectScalars(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"float", Float(2.5), "2.5"},
		{"null", Null(), "missing value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Inject("return $v", map[string]Value{"v": tc.value})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != "return "+tc.want {
				t.Errorf("got %q, want %q", out, "return "+tc.want)
			}
		})
	}
}

func TestInjectList(t *testing.T) {
	out, err := Inject("set xs to $xs", map[string]Value{
		"xs": List(String("a"), Int(1), Bool(true)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `set xs to {"a", 1, true}`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInjectObjectAsJSONString(t *testing.T) {
	out, err := Inject("set payload to $payload", map[string]Value{
		"payload": Object(map[string]any{"key": "value"}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `set payload to "{\"key\":\"value\"}"`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestInjectPrefixNames(t *testing.T) {
	// $name must not clobber $name2: longest placeholder wins.
	out, err := Inject("$name $name2", map[string]Value{
		"name":  String("short"),
		"name2": String("long"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `"short" "long"` {
		t.Errorf("got %q", out)
	}
}

func TestInjectMissingPlaceholderLeftAlone(t *testing.T) {
	out, err := Inject("return 1", map[string]Value{"unused": String("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "return 1" {
		t.Errorf("got %q", out)
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny([]any{"a", 1.0, nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	enc, err := v.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc != `{"a", 1, missing value}` {
		t.Errorf("got %q", enc)
	}

	if _, err := FromAny(make(chan int)); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestInjectBackslashEscaping(t *testing.T) {
	out, err := Inject("$p", map[string]Value{"p": String(`C:\path`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `C:\\path`) {
		t.Errorf("backslash not escaped: %q", out)
	}
}

func TestInjectControlCharacters(t *testing.T) {
	out, err := Inject("$p", map[string]Value{"p": String("line one\nline two\ttabbed")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `"line one\nline two\ttabbed"` {
		t.Errorf("got %q", out)
	}
}
