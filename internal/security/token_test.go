package security

import (
	"testing"
)

const testSecret = "test_secret_key_minimum_32_chars"

func TestGenerateActorToken(t *testing.T) {
	tests := []struct {
		name         string
		operatorID   uint
		operatorName string
	}{
		{
			name:         "Floor manager",
			operatorID:   1,
			operatorName: "floor-manager",
		},
		{
			name:         "Cashier",
			operatorID:   2,
			operatorName: "cashier-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateActorToken(tt.operatorID, tt.operatorName, testSecret)
			if err != nil {
				t.Fatalf("GenerateActorToken() error = %v", err)
			}
			if token == "" {
				t.Error("GenerateActorToken() returned empty token")
			}

			claims, err := ValidateActorToken(token, testSecret)
			if err != nil {
				t.Fatalf("ValidateActorToken() error = %v", err)
			}
			if claims.OperatorID != tt.operatorID {
				t.Errorf("OperatorID = %d, want %d", claims.OperatorID, tt.operatorID)
			}
			if claims.OperatorName != tt.operatorName {
				t.Errorf("OperatorName = %q, want %q", claims.OperatorName, tt.operatorName)
			}
		})
	}
}

func TestValidateActorToken_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "Empty token",
			token: "",
		},
		{
			name:  "Invalid format",
			token: "invalid.token.here",
		},
		{
			name:  "Random string",
			token: "randomstring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateActorToken(tt.token, testSecret); err == nil {
				t.Error("ValidateActorToken() expected error for invalid token, got nil")
			}
		})
	}
}

func TestValidateActorToken_WrongSecret(t *testing.T) {
	token, err := GenerateActorToken(1, "floor-manager", testSecret)
	if err != nil {
		t.Fatalf("GenerateActorToken() error = %v", err)
	}

	if _, err := ValidateActorToken(token, "another_secret_key_of_32_chars!!"); err == nil {
		t.Error("ValidateActorToken() expected error for wrong secret, got nil")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}
	b, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}

	if a == b {
		t.Error("two random tokens are identical")
	}
}
