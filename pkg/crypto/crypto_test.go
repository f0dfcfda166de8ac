package crypto

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("Expected wrong password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Error("Two hashes of the same password must differ")
	}
}

func TestBurnCompare(t *testing.T) {
	// Only contract: the dummy comparison runs without panicking.
	BurnCompare("anything")
}
