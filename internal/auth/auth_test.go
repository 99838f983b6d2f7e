package auth

import (
	"testing"
	"time"

	tm "github.com/twitsprout/tools/mock"
)

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 0, 0, 0, time.UTC)
	clk := &tm.Clock{NowFn: func() time.Time { return now }}
	tokens := &Tokens{Secret: []byte("s3cret"), TTL: time.Hour, Issuer: "media-catalog", Clock: clk}

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %s", err.Error())
	}

	table := []struct {
		label  string
		tokens *Tokens
		token  string
		at     time.Time
		expID  int
		expErr error
	}{
		{label: "valid token", tokens: tokens, token: tok, at: now.Add(time.Minute), expID: 7},
		{label: "expired token", tokens: tokens, token: tok, at: now.Add(2 * time.Hour), expErr: ErrInvalidToken},
		{label: "garbage", tokens: tokens, token: "not-a-token", at: now, expErr: ErrInvalidToken},
		{
			label:  "wrong secret",
			tokens: &Tokens{Secret: []byte("other"), TTL: time.Hour, Issuer: "media-catalog", Clock: clk},
			token:  tok,
			at:     now,
			expErr: ErrInvalidToken,
		},
		{
			label:  "wrong issuer",
			tokens: &Tokens{Secret: []byte("s3cret"), TTL: time.Hour, Issuer: "someone-else", Clock: clk},
			token:  tok,
			at:     now,
			expErr: ErrInvalidToken,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			now = ts.at
			id, err := ts.tokens.Parse(ts.token)
			if err != ts.expErr {
				t.Fatalf("unexpected error returned: %v", err)
			}
			if id != ts.expID {
				t.Fatalf("unexpected user id returned: %d", id)
			}
		})
	}
}
