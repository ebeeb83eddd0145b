package cronexpr

import (
	"math/rand"
	"testing"
)

func TestGenerateRandomAlwaysValid(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		expr, err := GenerateRandom(r)
		if err != nil {
			t.Fatalf("GenerateRandom returned an invalid expression: %v", err)
		}
		if !IsValidExpression(expr) {
			t.Fatalf("generated expression %q failed validation", expr)
		}
	}
}

func TestGenerateRandomDefaultsSourceWhenNil(t *testing.T) {
	expr, err := GenerateRandom(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsValidExpression(expr) {
		t.Fatalf("generated expression %q failed validation", expr)
	}
}
