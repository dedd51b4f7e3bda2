package utils

import "testing"

func TestGenerateOtpCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOtpCode()
		if err != nil {
			t.Fatalf("GenerateOtpCode: %v", err)
		}
		if code < 100000 || code > 999999 {
			t.Fatalf("code %d out of 6-digit range", code)
		}
	}
}

func TestGenerateAccessToken(t *testing.T) {
	a, err := GenerateAccessToken()
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	b, err := GenerateAccessToken()
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two generated tokens should differ")
	}
}
