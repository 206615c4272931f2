package lexer

import (
	"fmt"

	"github.com/picto-lang/picto/internal/position"
)

// TokenType represents the type of a token.
type TokenType int

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types. Keywords of the Picto surface syntax are emoji; everything
// else is conventional.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError
	TokenNewline

	// Literals
	TokenIdentifier
	TokenInt
	TokenFloat
	TokenString

	// Keywords
	TokenVar    // 📦
	TokenConst  // 🔒
	TokenFunc   // ⚙️
	TokenClass  // 🏛
	TokenStruct // 📐
	TokenIf     // ❓
	TokenElse   // ❗
	TokenWhile  // 🔁
	TokenFor    // 🔂
	TokenReturn // ↩️
	TokenBreak  // 🛑
	TokenPrint  // 🖨
	TokenTrue   // ✅
	TokenFalse  // ❌
	TokenNone   // 🚫
	TokenIn     // in

	// Operators
	TokenPlus        // +
	TokenMinus       // -
	TokenMul         // *
	TokenDiv         // /
	TokenPower       // **
	TokenAssign      // =
	TokenPlusAssign  // +=
	TokenIncrement   // ++
	TokenDecrement   // --
	TokenEq          // ==
	TokenNe          // !=
	TokenLt          // <
	TokenLe          // <=
	TokenGt          // >
	TokenGe          // >=
	TokenAnd         // &&
	TokenOr          // ||
	TokenNot         // !
	TokenCoalesce    // ??
	TokenOptChain    // ?.
	TokenQuestion    // ?
	TokenClosedRange // ...
	TokenHalfRange   // ..<
	TokenArrow       // ->

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenComma    // ,
	TokenColon    // :
	TokenDot      // .
)

// tokenNames maps token types to their display names.
var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenError:       "ERROR",
	TokenNewline:     "NEWLINE",
	TokenIdentifier:  "IDENT",
	TokenInt:         "INT",
	TokenFloat:       "FLOAT",
	TokenString:      "STRING",
	TokenVar:         "📦",
	TokenConst:       "🔒",
	TokenFunc:        "⚙️",
	TokenClass:       "🏛",
	TokenStruct:      "📐",
	TokenIf:          "❓",
	TokenElse:        "❗",
	TokenWhile:       "🔁",
	TokenFor:         "🔂",
	TokenReturn:      "↩️",
	TokenBreak:       "🛑",
	TokenPrint:       "🖨",
	TokenTrue:        "✅",
	TokenFalse:       "❌",
	TokenNone:        "🚫",
	TokenIn:          "in",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenPower:       "**",
	TokenAssign:      "=",
	TokenPlusAssign:  "+=",
	TokenIncrement:   "++",
	TokenDecrement:   "--",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenLt:          "<",
	TokenLe:          "<=",
	TokenGt:          ">",
	TokenGe:          ">=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",
	TokenCoalesce:    "??",
	TokenOptChain:    "?.",
	TokenQuestion:    "?",
	TokenClosedRange: "...",
	TokenHalfRange:   "..<",
	TokenArrow:       "->",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenComma:       ",",
	TokenColon:       ":",
	TokenDot:         ".",
}

// keywords maps keyword spellings (emoji base runes and the single ASCII
// keyword `in`) to token types. Variation selectors are stripped before
// lookup, so ⚙ and ⚙️ are the same keyword.
var keywords = map[rune]TokenType{
	'📦': TokenVar,
	'🔒': TokenConst,
	'⚙': TokenFunc,
	'🏛': TokenClass,
	'📐': TokenStruct,
	'❓': TokenIf,
	'❗': TokenElse,
	'🔁': TokenWhile,
	'🔂': TokenFor,
	'↩': TokenReturn,
	'🛑': TokenBreak,
	'🖨': TokenPrint,
	'✅': TokenTrue,
	'❌': TokenFalse,
	'🚫': TokenNone,
}

// Token is a single lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string // Raw text for identifiers and literals
	Pos     position.Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenInt, TokenFloat, TokenString, TokenError:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}
