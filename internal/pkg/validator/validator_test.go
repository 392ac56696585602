package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "8:30", "23:59", "12:05"}
	invalid := []string{"24:00", "12:60", "1200", "12:5", "", "ab:cd", "-1:00"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "6281234567890", "+628123456789", "08-1234-567890", "08 1234 567890"}
	invalid := []string{"0712345678", "123456789", "0812345678901234", "abc0812345678", "0812345678a"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type structSample struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	StartTime string  `json:"start_time" validate:"clock"`
	Kind      string  `json:"kind" validate:"oneof=A B"`
	Ignored   string  `json:"-"`
}

func TestStruct(t *testing.T) {
	ok := structSample{Name: "x", Latitude: -6.2, StartTime: "08:00", Kind: "A"}
	if errs := Struct(ok); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	bad := structSample{Latitude: 91, StartTime: "25:00", Kind: "C"}
	got := Struct(bad).ToMap()
	want := map[string]string{
		"name":       "name is required",
		"latitude":   "latitude must be between -90 and 90",
		"start_time": "start_time must be in HH:MM format",
		"kind":       "kind must be one of: A, B",
	}
	if len(got) != len(want) {
		t.Fatalf("Struct(invalid) = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Struct(invalid)[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("field", "bad")
	if errs.Err() == nil {
		t.Errorf("non-empty ValidationErrors.Err() should not be nil")
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"2024-0001", "0000-9999"}
	invalid := []string{"", "2024-001", "24-0001", "2024_0001", "EMP-0001"}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456789Z"}
	invalid := []string{"", "2024-01-15", "2024-01-15 10:30:00", "10:30"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}
