package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := map[string]Kind{
		"int":      INT,
		"char":     CHAR,
		"void":     VOID,
		"if":       IF,
		"else":     ELSE,
		"while":    WHILE,
		"for":      FOR,
		"return":   RETURN,
		"x":        IDENTIFIER,
		"returned": IDENTIFIER,
	}

	for in, want := range tests {
		if got := LookupIdent(in); got != want {
			t.Fatalf("LookupIdent(%q)=%s want=%s", in, got, want)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, k := range []Kind{INT, CHAR, VOID, IF, ELSE, WHILE, FOR, RETURN} {
		if !IsKeyword(k) {
			t.Fatalf("%s should be a keyword", k)
		}
	}
	if IsKeyword(IDENTIFIER) || IsKeyword(PLUS) {
		t.Fatalf("non-keyword kinds reported as keywords")
	}
}

func TestIsTypeKeyword(t *testing.T) {
	for _, k := range []Kind{INT, CHAR, VOID} {
		if !IsTypeKeyword(k) {
			t.Fatalf("%s should be a type keyword", k)
		}
	}
	if IsTypeKeyword(IF) {
		t.Fatalf("if should not be a type keyword")
	}
}

func TestTokenString(t *testing.T) {
	tok := New(IDENTIFIER, "foo", 3, 5)
	if tok.Line != 3 || tok.Column != 5 {
		t.Fatalf("position not preserved: %+v", tok)
	}
	if tok.String() != "IDENTIFIER(foo)" {
		t.Fatalf("unexpected string form: %q", tok.String())
	}
}
