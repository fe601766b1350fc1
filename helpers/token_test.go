package helpers

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	SetJWTKey("test-secret")

	token, err := GenerateToken("asha@example.com", "abc123", "USER")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "asha@example.com" || claims.UserID != "abc123" || claims.Role != "USER" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	SetJWTKey("key-one")
	token, err := GenerateToken("a@b.c", "u1", "USER")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	SetJWTKey("key-two")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with another key validated")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	SetJWTKey("test-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Error("password stored in the clear")
	}
	if !VerifyPassword(hashed, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hashed, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}
