package lexer

import "testing"

// kinds collects the token types produced for src, excluding the EOF marker.
func kinds(t *testing.T, src string) []Token {
	t.Helper()
	l := New("test.picto", src)
	toks := l.Tokenize()
	if toks[len(toks)-1].Type != TokenEOF {
		t.Fatalf("token stream does not end with EOF: %v", toks)
	}
	return toks[:len(toks)-1]
}

func TestKeywordsAndLiterals(t *testing.T) {
	toks := kinds(t, `📦 x = 42`)
	want := []TokenType{TokenVar, TokenIdentifier, TokenAssign, TokenInt}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, tt)
		}
	}
	if toks[1].Literal != "x" {
		t.Errorf("identifier literal = %q, want %q", toks[1].Literal, "x")
	}
	if toks[3].Literal != "42" {
		t.Errorf("int literal = %q, want %q", toks[3].Literal, "42")
	}
}

func TestVariationSelectorStripped(t *testing.T) {
	// ⚙️ carries U+FE0F, ⚙ does not; both must scan as the func keyword.
	for _, src := range []string{"⚙️ f() {}", "⚙ f() {}"} {
		toks := kinds(t, src)
		if len(toks) == 0 || toks[0].Type != TokenFunc {
			t.Errorf("%q: first token = %v, want %v", src, toks[0].Type, TokenFunc)
		}
	}
}

func TestRangeOperatorsAfterInteger(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenType
	}{
		{"1...5", []TokenType{TokenInt, TokenClosedRange, TokenInt}},
		{"1..<5", []TokenType{TokenInt, TokenHalfRange, TokenInt}},
		{"1.5", []TokenType{TokenFloat}},
	}
	for _, tt := range tests {
		toks := kinds(t, tt.src)
		if len(toks) != len(tt.want) {
			t.Fatalf("%q: got %v, want %d tokens", tt.src, toks, len(tt.want))
		}
		for i, w := range tt.want {
			if toks[i].Type != w {
				t.Errorf("%q token %d = %v, want %v", tt.src, i, toks[i].Type, w)
			}
		}
	}
}

func TestCompoundOperators(t *testing.T) {
	toks := kinds(t, `a ?? b ?. c ** d != e <= f && g || h += i ++ -- ->`)
	want := []TokenType{
		TokenIdentifier, TokenCoalesce, TokenIdentifier, TokenOptChain,
		TokenIdentifier, TokenPower, TokenIdentifier, TokenNe,
		TokenIdentifier, TokenLe, TokenIdentifier, TokenAnd,
		TokenIdentifier, TokenOr, TokenIdentifier, TokenPlusAssign,
		TokenIdentifier, TokenIncrement, TokenDecrement, TokenArrow,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := kinds(t, `"a\n\t\"b\\"`)
	if len(toks) != 1 || toks[0].Type != TokenString {
		t.Fatalf("got %v, want one string token", toks)
	}
	if got, want := toks[0].Literal, "a\n\t\"b\\"; got != want {
		t.Errorf("string literal = %q, want %q", got, want)
	}
}

func TestCommentsAndNewlines(t *testing.T) {
	toks := kinds(t, "📦 x = 1 💬 the answer\n🖨 x")
	want := []TokenType{TokenVar, TokenIdentifier, TokenAssign, TokenInt, TokenNewline, TokenPrint, TokenIdentifier}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %d tokens", toks, len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("test.picto", `"abc`)
	l.Tokenize()
	if l.Err() == nil {
		t.Fatal("expected lexical error for unterminated string")
	}
}

func TestTokenPositions(t *testing.T) {
	toks := kinds(t, "📦 x = 1\n🖨 x")
	last := toks[len(toks)-1]
	if last.Pos.Line != 2 {
		t.Errorf("second-line token at line %d, want 2", last.Pos.Line)
	}
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", toks[0].Pos.Line, toks[0].Pos.Column)
	}
}
