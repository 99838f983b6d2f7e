package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"media-catalog/internal/auth"
	"media-catalog/internal/mock"

	"github.com/google/go-cmp/cmp"
	httputils "github.com/twitsprout/tools/http"
	jsonutils "github.com/twitsprout/tools/json"
	tm "github.com/twitsprout/tools/mock"
)

var testTokens = &auth.Tokens{Secret: []byte("test-secret"), TTL: time.Hour, Issuer: "media-catalog"}

func tokenFor(t *testing.T, userID int) string {
	t.Helper()
	tok, err := testTokens.Issue(userID)
	if err != nil {
		t.Fatalf("unable to issue token: %s", err.Error())
	}
	return tok
}

func newTestHandler(c *mock.Catalog) *Handler {
	h := &Handler{
		Catalog: c,
		Logger:  tm.NopLogger,
		Tokens:  testTokens,
	}
	h.Handler()
	return h
}

func serve(h *Handler, method, url, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	wr := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	h.router.ServeHTTP(wr, req)
	return wr
}

// checkResponse decodes the response body into a value of the same type as
// expRes and compares the two.
func checkResponse[T any](t *testing.T, wr *httptest.ResponseRecorder, expCode int, expRes T) {
	t.Helper()
	if wr.Code != expCode {
		var res httputils.JSONErrRes
		_ = jsonutils.Decode(wr.Body, &res)
		t.Fatalf("unexpected response code returned: %s %s", cmp.Diff(expCode, wr.Code), res.Error.Message)
	}
	var res T
	err := jsonutils.Decode(wr.Body, &res)
	if err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	if !cmp.Equal(res, expRes) {
		t.Fatalf("unexpected response returned: %s", cmp.Diff(expRes, res))
	}
}

func errRes(msg string) httputils.JSONErrRes {
	return httputils.JSONErrRes{Error: httputils.JSONErr{Message: msg}}
}

func TestAuthMiddleware(t *testing.T) {
	h := newTestHandler(&mock.Catalog{})

	wr := serve(h, "GET", "/v1/photo/1", "", "")
	checkResponse(t, wr, http.StatusUnauthorized, errRes(errUnauthorized.Error()))

	wr = serve(h, "GET", "/v1/photo/1", "", "garbage")
	checkResponse(t, wr, http.StatusUnauthorized, errRes(errUnauthorized.Error()))

	wr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/photo/1", nil)
	req.Header.Set("Authorization", "Basic abc")
	h.router.ServeHTTP(wr, req)
	checkResponse(t, wr, http.StatusUnauthorized, errRes(errUnauthorized.Error()))
}

func TestStatusFor(t *testing.T) {
	if code := statusFor(io.EOF); code != http.StatusInternalServerError {
		t.Fatalf("unexpected status for an unknown error: %d", code)
	}
}
