package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestReadForm_JSON(t *testing.T) {
	body := `{"log_ids":["a","b"],"morning_milk":12.5,"terms":true,"notes":null}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	form, err := ReadForm(req)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := form["log_ids"]; len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected log_ids %v", got)
	}
	if form.Get("morning_milk") != "12.5" || form.Get("terms") != "true" {
		t.Fatalf("unexpected scalars %v", form)
	}
	if _, ok := form["notes"]; !ok || form.Get("notes") != "" {
		t.Fatalf("expected empty notes, got %v", form["notes"])
	}
}

func TestReadForm_EmptyAndInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	form, err := ReadForm(req)
	if err != nil || len(form) != 0 {
		t.Fatalf("expected empty form, got %v err=%v", form, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	if _, err := ReadForm(req); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestReadForm_URLEncoded(t *testing.T) {
	v := url.Values{}
	v.Add("log_ids[]", "a")
	v.Add("log_ids[]", "b")
	v.Add("log_ids", "c")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := ReadForm(req)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := Values(form, "log_ids")
	if len(got) != 3 || got[0] != "c" {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestFlatten_Omit(t *testing.T) {
	form := url.Values{
		"email":     {"a@b.c", "ignored"},
		"password1": {"secret"},
		"empty":     {},
	}
	out := Flatten(form, "password1")
	if len(out) != 1 || out["email"] != "a@b.c" {
		t.Fatalf("unexpected flatten %v", out)
	}
	if Flatten(nil) != nil {
		t.Fatalf("expected nil for empty form")
	}
}

func TestWriteFormError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteFormError(rr, http.StatusBadRequest, "validation failed", []string{"Name is required."},
		url.Values{"name": {""}, "password2": {"x"}}, "password2")

	if rr.Code != http.StatusBadRequest || rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	b := rr.Body.String()
	if !strings.Contains(b, `"messages":["Name is required."]`) || strings.Contains(b, "password2") {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestLocalPath(t *testing.T) {
	cases := map[string]string{
		"/manage-logs?animal=x": "/manage-logs?animal=x",
		" /animal/1 ":           "/animal/1",
		"":                      "",
		"manage-logs":           "",
		"//evil.com":            "",
		"/\\evil.com":           "",
		"/\\/evil.com":          "",
		"/ok\\..\\evil":         "",
		"https://evil.com/x":    "",
		"/x\r\nSet-Cookie: a":   "",
	}
	for in, want := range cases {
		if got := LocalPath(in); got != want {
			t.Errorf("LocalPath(%q) = %q, want %q", in, got, want)
		}
	}
}
