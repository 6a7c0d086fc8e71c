package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rono/pkg/token"
)

func TestTokenizeBasicProgram(t *testing.T) {
	src := `chif main() {
  var x: int = 1 + 2
  con.out("{x}")
}
`
	toks, errs := Tokenize("prog.rono", src)
	require.Empty(t, errs)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Contains(t, kinds, token.KwChif)
	require.Contains(t, kinds, token.KwVar)
	require.Contains(t, kinds, token.Plus)
	require.Contains(t, kinds, token.String)
	require.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestTokenizeNumbers(t *testing.T) {
	toks, errs := Tokenize("prog.rono", "42 3.14")
	require.Empty(t, errs)
	require.Equal(t, token.Int, toks[0].Kind)
	require.Equal(t, "42", toks[0].Lexeme)
	require.Equal(t, token.Float, toks[1].Kind)
	require.Equal(t, "3.14", toks[1].Lexeme)
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, errs := Tokenize("prog.rono", `"a\nb\"c"`)
	require.Empty(t, errs)
	require.Equal(t, token.String, toks[0].Kind)
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	_, errs := Tokenize("prog.rono", `"unterminated`)
	require.NotEmpty(t, errs)
}

func TestTokenizeLineAndBlockComments(t *testing.T) {
	toks, errs := Tokenize("prog.rono", "// comment\n/* block */ 5")
	require.Empty(t, errs)
	require.Equal(t, token.Int, toks[0].Kind)
	require.Equal(t, "5", toks[0].Lexeme)
}

func TestTokenizeOperators(t *testing.T) {
	toks, errs := Tokenize("prog.rono", "== != <= >= && || ! &")
	require.Empty(t, errs)
	want := []token.Kind{token.Eq, token.NotEq, token.LtEq, token.GtEq, token.And, token.Or, token.Not, token.Amp, token.EOF}
	require.Len(t, toks, len(want))
	for idx, k := range want {
		require.Equal(t, k, toks[idx].Kind)
	}
}
