package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret-pass" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Verify("s3cret-pass", digest) {
		t.Fatalf("Verify rejected the original password")
	}
	if h.Verify("other-pass", digest) {
		t.Fatalf("Verify accepted a different password")
	}
}

func TestPasswordHasher_LongPrintableInput(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	// inputs past bcrypt's 72-byte key limit, including multibyte runes,
	// must hash and verify with the whole input significant
	cases := []string{
		strings.Repeat("a", 73),
		strings.Repeat("é", 72), // 144 bytes
		strings.Repeat("correct horse battery staple ", 8),
	}
	for _, long := range cases {
		digest, err := h.Hash(long)
		if err != nil {
			t.Fatalf("Hash(%d bytes) returned error: %v", len(long), err)
		}
		if !h.Verify(long, digest) {
			t.Fatalf("Verify rejected a long password")
		}
		// bytes beyond the 72nd must still matter
		if h.Verify(long[:72]+"x", digest) {
			t.Fatalf("Verify ignored bytes past the bcrypt limit")
		}
	}
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatalf("Verify accepted a malformed digest")
	}
	if h.Verify("anything", "") {
		t.Fatalf("Verify accepted an empty digest")
	}
}

func TestNewPasswordHasher_CostClamp(t *testing.T) {
	h := NewPasswordHasher(-1)

	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
