package fields

import "testing"

func TestValidateText(t *testing.T) {
	if !Validate("hello", "text") {
		t.Error("string should satisfy text")
	}
	if Validate(42.0, "text") {
		t.Error("number should not satisfy text")
	}
	if Validate(true, "text") {
		t.Error("bool should not satisfy text")
	}
}

func TestValidateNumber(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{42.0, true},
		{float64(0), true},
		{-3.14, true},
		{7, true},
		{int64(7), true},
		{"42", false},
		{true, false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Validate(c.value, "number"); got != c.want {
			t.Errorf("Validate(%v, number) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestValidateBoolean(t *testing.T) {
	if !Validate(true, "boolean") || !Validate(false, "boolean") {
		t.Error("bools should satisfy boolean")
	}
	if Validate("true", "boolean") {
		t.Error("string should not satisfy boolean")
	}
}

func TestValidateDate(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"06-11-2005", true},
		{"29-02-2024", true},  // leap year
		{"29-02-2023", false}, // not a leap year
		{"29-02-2000", true},  // divisible by 400
		{"29-02-1900", false}, // divisible by 100 but not 400
		{"31-04-2025", false}, // April has 30 days
		{"30-04-2025", true},
		{"13-01-2025", true},
		{"01-13-2025", false}, // month out of range
		{"00-01-2025", false},
		{"32-01-2025", false},
		{"1-1-2025", false},   // digits must be padded
		{"2025-01-13", false}, // wrong order
		{"06/11/2005", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Validate(c.value, "date"); got != c.want {
			t.Errorf("Validate(%q, date) = %v, want %v", c.value, got, c.want)
		}
	}
	if Validate(6112005.0, "date") {
		t.Error("number should not satisfy date")
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"user@example", false}, // domain needs a dot
		{"user@example.c", false},
		{"not-an-email", false},
		{"@example.com", false},
	}
	for _, c := range cases {
		if got := Validate(c.value, "email"); got != c.want {
			t.Errorf("Validate(%q, email) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if !Validate("secret", "password") {
		t.Error("6 chars should satisfy password")
	}
	if Validate("short", "password") {
		t.Error("5 chars should not satisfy password")
	}
	if Validate(123456.0, "password") {
		t.Error("number should not satisfy password")
	}
}

// Declared-but-unsupported tags reject every value.
func TestValidateUnsupportedTags(t *testing.T) {
	values := []any{
		"text", 42.0, true, nil,
		map[string]any{"k": "v"}, []any{1.0, 2.0},
	}
	for _, tag := range []string{"object", "array", "null", "undefined"} {
		if !IsAllowedType(tag) {
			t.Errorf("%s should be an allowed declaration", tag)
		}
		for _, v := range values {
			if Validate(v, tag) {
				t.Errorf("Validate(%v, %s) should be false", v, tag)
			}
		}
	}
}

func TestIsAllowedType(t *testing.T) {
	for _, tag := range AllowedTypes {
		if !IsAllowedType(tag) {
			t.Errorf("%s should be allowed", tag)
		}
	}
	for _, tag := range []string{"string", "int", "Text", ""} {
		if IsAllowedType(tag) {
			t.Errorf("%s should not be allowed", tag)
		}
	}
}
