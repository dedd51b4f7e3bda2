package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/apiforge/apiforge/internal/testutil"
	"github.com/apiforge/apiforge/pkg/models"
)

func TestPlatformSignupAndLogin(t *testing.T) {
	router, mem := newTestEnv(t)
	email := testutil.GenerateTestEmail()

	rr := doJSON(t, router, "POST", "/users/signup", models.PlatformSignupRequest{
		Username: "ada",
		Email:    email,
		Password: "hunter22",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rr.Code, rr.Body.String())
	}
	var signup models.PlatformSignupResponse
	decodeBody(t, rr, &signup)
	if signup.APIToken == "" {
		t.Fatal("signup returned no access token")
	}

	rr = doJSON(t, router, "POST", "/users/login", models.LoginRequest{
		Email:    email,
		Password: "hunter22",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rr.Code, rr.Body.String())
	}
	var login models.PlatformLoginResponse
	decodeBody(t, rr, &login)
	if login.Token == "" {
		t.Error("login returned no session token")
	}
	if login.UserData == nil || login.UserData.Email != email {
		t.Fatalf("userData = %+v", login.UserData)
	}
	if login.UserData.AccessToken != signup.APIToken {
		t.Error("login access token differs from signup token")
	}

	// The session token from login must open the generate route.
	rr = doJSON(t, router, "POST", "/auth/generate-signup-url", models.GenerateAPIRequest{
		FieldNames: []string{"name"},
		FieldTypes: []string{"text"},
	}, authHeader("Bearer "+login.Token))
	if rr.Code != http.StatusOK {
		t.Fatalf("generate with login token status = %d, body %s", rr.Code, rr.Body.String())
	}

	cfg, err := mem.Store().PlatformUsers.GetByEmail(t.Context(), email)
	if err != nil || cfg == nil {
		t.Fatalf("stored account lookup: %v %v", cfg, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestPlatformLoginErrors(t *testing.T) {
	router, mem := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), 10)
	if err != nil {
		t.Fatal(err)
	}
	account := mem.CreateTestPlatformUser(t, testutil.GenerateTestEmail(), string(hash))

	t.Run("unknown email is 404", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/login", models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		}, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rr.Code)
		}
		if got := errorMessage(t, rr); got != "User not found. Please sign up first." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("wrong password is 400", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/login", models.LoginRequest{
			Email:    account.Email,
			Password: "wrong",
		}, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Invalid password." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("missing credentials is 400", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/login", models.LoginRequest{Email: account.Email}, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
	})
}

func TestOtpFlow(t *testing.T) {
	router, mem := newTestEnv(t)
	email := testutil.GenerateTestEmail()

	rr := doJSON(t, router, "POST", "/users/send-otp", models.SendOtpRequest{Email: email}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("send status = %d, body %s", rr.Code, rr.Body.String())
	}

	otp, err := mem.Store().Otps.GetByEmail(t.Context(), email)
	if err != nil || otp == nil {
		t.Fatalf("stored otp lookup: %v %v", otp, err)
	}
	if otp.Code < 100000 || otp.Code > 999999 {
		t.Fatalf("code = %d, want 6 digits", otp.Code)
	}

	t.Run("numeric code verifies", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
			Email: email,
			Otp:   otp.Code,
		}, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("string code verifies", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
			Email: email,
			Otp:   fmt.Sprintf("%d", otp.Code),
		}, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("code survives verification", func(t *testing.T) {
		// Verifying twice works: codes are replaced, not consumed.
		rr := doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
			Email: email,
			Otp:   otp.Code,
		}, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
			Email: email,
			Otp:   otp.Code + 1,
		}, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Incorrect OTP." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("resend supersedes old code", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/users/send-otp", models.SendOtpRequest{Email: email}, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("resend status = %d", rr.Code)
		}
		fresh, err := mem.Store().Otps.GetByEmail(t.Context(), email)
		if err != nil || fresh == nil {
			t.Fatalf("stored otp lookup: %v %v", fresh, err)
		}
		if fresh.Code == otp.Code {
			t.Skip("collision between consecutive random codes")
		}

		rr = doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
			Email: email,
			Otp:   otp.Code,
		}, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("stale code status = %d, want 400", rr.Code)
		}
	})
}

func TestOtpExpired(t *testing.T) {
	router, mem := newTestEnv(t)
	email := testutil.GenerateTestEmail()

	expired := &models.OtpRecord{
		Email:     email,
		Code:      123456,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-11 * time.Minute),
	}
	if err := mem.Store().Otps.Replace(t.Context(), expired); err != nil {
		t.Fatal(err)
	}

	rr := doJSON(t, router, "POST", "/users/verify-otp", models.VerifyOtpRequest{
		Email: email,
		Otp:   123456,
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := errorMessage(t, rr); got != "OTP has expired. Request a new one." {
		t.Errorf("error = %q", got)
	}
}

func TestSendOtpRequiresEmail(t *testing.T) {
	router, _ := newTestEnv(t)
	rr := doJSON(t, router, "POST", "/users/send-otp", map[string]any{}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if got := errorMessage(t, rr); got != "Email is required." {
		t.Errorf("error = %q", got)
	}
}
