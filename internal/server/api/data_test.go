package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/apiforge/apiforge/pkg/models"
)

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": token}
}

func TestDataAuthChain(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t, []string{"name"}, []string{"text"})

	t.Run("unknown id is 404 before auth", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/no-such-id", nil, authHeader(cfg.AccessToken))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Invalid API link." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/"+cfg.ID, nil, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Missing Authorization token." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("wrong token is 403", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/"+cfg.ID, nil, authHeader("wrong-token"))
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Unauthorized: Invalid API token." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("bare token accepted", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/"+cfg.ID, nil, authHeader(cfg.AccessToken))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("bearer prefix stripped", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/"+cfg.ID, nil, authHeader("Bearer "+cfg.AccessToken))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body %s", rr.Code, rr.Body.String())
		}
	})
}

func TestCreateAndFetchRecords(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t, []string{"name", "age"}, []string{"text", "number"})
	headers := authHeader("Bearer " + cfg.AccessToken)

	rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"name": "Ada", "age": 36}, headers)
	if rr.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Message string        `json:"message"`
		Data    models.Record `json:"data"`
	}
	decodeBody(t, rr, &created)
	if created.Message != "New data added successfully!" {
		t.Errorf("message = %q", created.Message)
	}
	if created.Data["name"] != "Ada" {
		t.Errorf("name = %v", created.Data["name"])
	}
	if created.Data.RecordID() == "" {
		t.Error("created record has no id")
	}

	rr = doJSON(t, router, "GET", "/api/"+cfg.ID, nil, headers)
	if rr.Code != http.StatusOK {
		t.Fatalf("fetch status = %d", rr.Code)
	}
	var listed struct {
		Message string          `json:"message"`
		Data    []models.Record `json:"data"`
	}
	decodeBody(t, rr, &listed)
	if listed.Message != "Fetching API data..." {
		t.Errorf("message = %q", listed.Message)
	}
	if len(listed.Data) != 1 {
		t.Fatalf("record count = %d, want 1", len(listed.Data))
	}
	if listed.Data[0]["age"] != float64(36) {
		t.Errorf("age = %v", listed.Data[0]["age"])
	}
}

func TestCreateValidation(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t,
		[]string{"name", "age", "active"},
		[]string{"text", "number", "boolean"})
	headers := authHeader(cfg.AccessToken)

	t.Run("empty body rejected", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{}, headers)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		if got := errorMessage(t, rr); got != "No data provided. Please send valid data." {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("missing fields listed before invalid fields", func(t *testing.T) {
		// "name" carries the wrong type, but the missing-field error wins.
		rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"name": 12}, headers)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		got := errorMessage(t, rr)
		if !strings.HasPrefix(got, "Missing fields: ") {
			t.Fatalf("error = %q, want missing-fields message", got)
		}
		if !strings.Contains(got, "age") || !strings.Contains(got, "active") {
			t.Errorf("error = %q, should list age and active", got)
		}
	})

	t.Run("invalid field reported with hint", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/api/"+cfg.ID,
			map[string]any{"name": "Ada", "age": "not-a-number", "active": true}, headers)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		got := errorMessage(t, rr)
		if !strings.HasPrefix(got, "Invalid data format for fields: ") {
			t.Fatalf("error = %q, want invalid-fields message", got)
		}
		if !strings.Contains(got, "key name 'age' should be a number.") {
			t.Errorf("error = %q, missing hint for age", got)
		}
	})

	t.Run("undeclared fields dropped silently", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/api/"+cfg.ID,
			map[string]any{"name": "Ada", "age": 36, "active": true, "extra": "ignored"}, headers)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
		var created struct {
			Data models.Record `json:"data"`
		}
		decodeBody(t, rr, &created)
		if _, ok := created.Data["extra"]; ok {
			t.Error("undeclared field persisted")
		}
	})
}

func TestDateFieldHint(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t, []string{"dob"}, []string{"date"})
	headers := authHeader(cfg.AccessToken)

	rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"dob": "2024-02-29"}, headers)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	got := errorMessage(t, rr)
	if !strings.Contains(got, "dd-mm-yyyy") {
		t.Errorf("error = %q, want date format hint", got)
	}

	rr = doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"dob": "29-02-2024"}, headers)
	if rr.Code != http.StatusOK {
		t.Fatalf("leap day rejected: %d %s", rr.Code, rr.Body.String())
	}
}

func TestUpdateRecord(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t, []string{"name", "age"}, []string{"text", "number"})
	headers := authHeader(cfg.AccessToken)

	rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"name": "Ada", "age": 36}, headers)
	var created struct {
		Data models.Record `json:"data"`
	}
	decodeBody(t, rr, &created)
	recordID := created.Data.RecordID()

	t.Run("shallow merge keeps untouched fields", func(t *testing.T) {
		rr := doJSON(t, router, "PUT", "/api/"+cfg.ID+"/"+recordID, map[string]any{"age": 37}, headers)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
		var updated struct {
			Message string        `json:"message"`
			Data    models.Record `json:"data"`
		}
		decodeBody(t, rr, &updated)
		if updated.Message != "Record updated successfully!" {
			t.Errorf("message = %q", updated.Message)
		}
		if updated.Data["name"] != "Ada" || updated.Data["age"] != float64(37) {
			t.Errorf("merged record = %v", updated.Data)
		}
	})

	t.Run("updates skip type checks", func(t *testing.T) {
		rr := doJSON(t, router, "PUT", "/api/"+cfg.ID+"/"+recordID, map[string]any{"age": "thirty-eight"}, headers)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("unknown record is 404", func(t *testing.T) {
		rr := doJSON(t, router, "PUT", "/api/"+cfg.ID+"/missing-record", map[string]any{"age": 1}, headers)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rr.Code)
		}
		if got := errorMessage(t, rr); got != "Record not found." {
			t.Errorf("error = %q", got)
		}
	})
}

func TestDeleteRecord(t *testing.T) {
	router, mem := newTestEnv(t)
	cfg := mem.CreateTestSchema(t, []string{"name"}, []string{"text"})
	headers := authHeader(cfg.AccessToken)

	rr := doJSON(t, router, "POST", "/api/"+cfg.ID, map[string]any{"name": "Ada"}, headers)
	var created struct {
		Data models.Record `json:"data"`
	}
	decodeBody(t, rr, &created)
	recordID := created.Data.RecordID()

	rr = doJSON(t, router, "DELETE", "/api/"+cfg.ID+"/"+recordID, nil, headers)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", rr.Code, rr.Body.String())
	}
	var deleted struct {
		Message string `json:"message"`
	}
	decodeBody(t, rr, &deleted)
	if deleted.Message != "Record deleted successfully!" {
		t.Errorf("message = %q", deleted.Message)
	}

	// A second delete of the same id reports not found.
	rr = doJSON(t, router, "DELETE", "/api/"+cfg.ID+"/"+recordID, nil, headers)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rr.Code)
	}

	rr = doJSON(t, router, "GET", "/api/"+cfg.ID, nil, headers)
	var listed struct {
		Data []models.Record `json:"data"`
	}
	decodeBody(t, rr, &listed)
	if len(listed.Data) != 0 {
		t.Errorf("record count after delete = %d", len(listed.Data))
	}
}
