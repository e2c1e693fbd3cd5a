package paging

import (
	"net/url"
	"testing"

	perr "biasdb/internal/platform/errors"
)

func TestParse_Defaults(t *testing.T) {
	w, err := Parse(url.Values{}, Limits{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if w.Skip != 0 || w.Limit != DefaultLimit {
		t.Fatalf("got %+v", w)
	}
}

func TestParse_Table(t *testing.T) {
	cases := []struct {
		name      string
		q         string
		lim       Limits
		wantSkip  int
		wantLimit int
		wantErr   bool
		field     string
	}{
		{name: "explicit", q: "skip=1000&limit=500", wantSkip: 1000, wantLimit: 500},
		{name: "zero limit falls back", q: "limit=0", wantLimit: DefaultLimit},
		{name: "max allowed", q: "limit=1000", wantLimit: 1000},
		{name: "over max", q: "limit=1001", wantErr: true, field: "limit"},
		{name: "negative skip", q: "skip=-1", wantErr: true, field: "skip"},
		{name: "negative limit", q: "limit=-5", wantErr: true, field: "limit"},
		{name: "garbage", q: "skip=abc", wantErr: true, field: "skip"},
		{name: "spaces trimmed", q: "skip=+3", wantSkip: 3, wantLimit: DefaultLimit},
		{name: "custom max", q: "limit=60", lim: Limits{Max: 50}, wantErr: true, field: "limit"},
		{name: "default clamped to max", q: "", lim: Limits{Max: 50}, wantLimit: 50},
		{name: "custom default", q: "", lim: Limits{Default: 20}, wantLimit: 20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := url.ParseQuery(c.q)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}
			w, err := Parse(q, c.lim)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", w)
				}
				if perr.CodeOf(err) != perr.ErrorCodeValidation {
					t.Fatalf("code = %v", perr.CodeOf(err))
				}
				if e, ok := perr.As(err); !ok || e.Field() != c.field {
					t.Fatalf("field = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if w.Skip != c.wantSkip || w.Limit != c.wantLimit {
				t.Fatalf("got %+v want skip=%d limit=%d", w, c.wantSkip, c.wantLimit)
			}
		})
	}
}
