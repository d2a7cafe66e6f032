package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	t.Run("hashes and verifies a password", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("failed hashing password: %v", err)
		}
		if hash == "correct horse battery staple" {
			t.Fatalf("hash must not equal the plaintext")
		}
		if !CheckPassword("correct horse battery staple", hash) {
			t.Fatalf("expected matching password to verify")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		hash, err := HashPassword("password123")
		if err != nil {
			t.Fatalf("failed hashing password: %v", err)
		}
		if CheckPassword("password124", hash) {
			t.Fatalf("expected mismatch to fail verification")
		}
	})

	t.Run("produces distinct hashes for the same input", func(t *testing.T) {
		first, err := HashPassword("same-input")
		if err != nil {
			t.Fatalf("failed hashing password: %v", err)
		}
		second, err := HashPassword("same-input")
		if err != nil {
			t.Fatalf("failed hashing password: %v", err)
		}
		if first == second {
			t.Fatalf("expected salted hashes to differ")
		}
	})
}
