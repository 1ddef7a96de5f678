package auth

import "testing"

func TestIsPasswordValid(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		owner     string
		birthdate string
		want      bool
	}{
		{"all rules hold", "Str0ngpass", "Maria", "1990-04-12", true},
		{"too short", "Short1", "Maria", "1990-04-12", false},
		{"missing uppercase", "alllowercase1", "Maria", "1990-04-12", false},
		{"missing lowercase", "ALLUPPERCASE1", "Maria", "1990-04-12", false},
		{"missing digit", "NoDigitsHere", "Maria", "1990-04-12", false},
		{"contains owner name", "Maria1990x", "Maria", "1990-04-12", false},
		{"contains owner name ignoring case", "xxmaria1X", "Maria", "1990-04-12", false},
		{"contains one token of a compound name", "MariaSouza1", "Maria Souza", "1990-04-12", false},
		{"short connective does not block", "Destino9x", "Lia de Paz", "1990-04-12", true},
		{"contains birthdate", "Ab1990-04-12", "Maria", "1990-04-12", false},
		{"empty owner and birthdate pass containment", "Str0ngpass", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPasswordValid(tc.candidate, tc.owner, tc.birthdate); got != tc.want {
				t.Fatalf("IsPasswordValid(%q, %q, %q) = %v, want %v",
					tc.candidate, tc.owner, tc.birthdate, got, tc.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ngpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Str0ngpass" {
		t.Fatal("hash must not equal plaintext")
	}
	if err := VerifyPassword(hash, "Str0ngpass"); err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if err := VerifyPassword(hash, "WrongPass1"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
