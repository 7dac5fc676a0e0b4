package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min bcrypt cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashRefreshRawStable(t *testing.T) {
	a := HashRefreshRaw("token-a")
	b := HashRefreshRaw("token-a")
	c := HashRefreshRaw("token-b")
	if a != b {
		t.Error("same input produced different hashes")
	}
	if a == c {
		t.Error("different inputs produced the same hash")
	}
	if len(a) != 64 { // sha256 hex
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
