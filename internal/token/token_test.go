package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/acoudray/clubhouse/internal/errs"
)

func TestNewCodec_RequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec(nil, time.Minute); err == nil {
		t.Fatalf("want error on empty key")
	}
	c, err := NewCodec([]byte("k"), 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if c.ttl != DefaultTTL {
		t.Fatalf("ttl=%v, want default %v", c.ttl, DefaultTTL)
	}
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCodec([]byte("secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	raw, err := c.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(raw, "."); len(parts) != 3 {
		t.Fatalf("token is not three-part: %q", raw)
	}

	id, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("id=%d, want 42", id)
	}
}

func TestCodec_Verify_InvalidInputsCollapse(t *testing.T) {
	t.Parallel()

	c, _ := NewCodec([]byte("secret"), time.Hour)
	other, _ := NewCodec([]byte("other-key"), time.Hour)

	good, err := c.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := map[string]string{
		"garbage":       "definitely not a token",
		"empty":         "",
		"two parts":     "aaaa.bbbb",
		"bad signature": good[:len(good)-2] + "xx",
	}
	for name, raw := range cases {
		if _, err := c.Verify(raw); !errors.Is(err, errs.ErrInvalidToken) {
			t.Fatalf("%s: want ErrInvalidToken, got %v", name, err)
		}
	}

	// token signed with a different key
	foreign, err := other.Issue(7)
	if err != nil {
		t.Fatalf("Issue(foreign): %v", err)
	}
	if _, err := c.Verify(foreign); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("foreign key: want ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	t.Parallel()

	c := &Codec{key: []byte("secret"), ttl: -time.Minute}
	raw, err := c.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(raw); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("expired: want ErrInvalidToken, got %v", err)
	}
}

func TestDigest_DeterministicAndOneWay(t *testing.T) {
	t.Parallel()

	d1 := Digest("some.raw.token")
	d2 := Digest("some.raw.token")
	if d1 != d2 {
		t.Fatalf("digest not deterministic")
	}
	if len(d1) != 64 {
		t.Fatalf("len=%d, want 64 hex chars", len(d1))
	}
	if Digest("another.raw.token") == d1 {
		t.Fatalf("distinct tokens share a digest")
	}
}
