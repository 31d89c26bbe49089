package httpx

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
)

func multipartReq(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/catalog", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseProductForm(t *testing.T) {
	h := &Handler{Validate: validator.New()}

	valid := map[string]string{
		"title":       "Букет «Нежность»",
		"description": "25 белых роз",
		"price":       "3500",
		"category":    "bouquet",
	}

	form, ok := h.parseProductForm(multipartReq(t, valid))
	if !ok {
		t.Fatal("valid form rejected")
	}
	if form.Title != "Букет «Нежность»" || form.Price != 3500 || form.Category != "bouquet" {
		t.Errorf("unexpected form: %+v", form)
	}

	bad := []struct {
		name  string
		field string
		value string
	}{
		{"empty title", "title", ""},
		{"zero price", "price", "0"},
		{"negative price", "price", "-100"},
		{"price not a number", "price", "дорого"},
		{"unknown category", "category", "wreath"},
		{"empty category", "category", ""},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			fields := make(map[string]string, len(valid))
			for k, v := range valid {
				fields[k] = v
			}
			fields[tc.field] = tc.value
			if _, ok := h.parseProductForm(multipartReq(t, fields)); ok {
				t.Errorf("form with %s accepted", tc.name)
			}
		})
	}
}

func TestParseProductFormTrimsSpaces(t *testing.T) {
	h := &Handler{Validate: validator.New()}
	form, ok := h.parseProductForm(multipartReq(t, map[string]string{
		"title":    "  Пионы  ",
		"price":    " 4200 ",
		"category": "composition",
	}))
	if !ok {
		t.Fatal("form rejected")
	}
	if form.Title != "Пионы" {
		t.Errorf("title = %q", form.Title)
	}
	if form.Price != 4200 {
		t.Errorf("price = %d", form.Price)
	}
}
