package crypto

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Fatalf("unexpected encoding: %s", hash)
	}
	if !VerifyPassword("secreto123", hash) {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword("otro", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	b, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plain", "bcrypt$x$y", "argon2id$!!$zz"} {
		if VerifyPassword("secreto123", encoded) {
			t.Errorf("malformed hash %q must not verify", encoded)
		}
	}
}
