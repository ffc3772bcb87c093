package syntax

import "github.com/tine-lang/tine/internal/model"

// Precedence levels for tine's seven binary operators, all of which desugar
// to a Call of the built-in of the same name — grounded on the precedence
// table style of ATSOTECK-rage/internal/compiler/parser.go's prec*
// constants, trimmed to the operators tine actually has.
const (
	precLowest = iota
	precOr     // ||
	precAnd    // &&
	precAddSub // +, -
	precMulDiv // *, /, %
)

func precedenceOf(kind model.TokenKind) int {
	switch kind {
	case model.TK_OrOr:
		return precOr
	case model.TK_AndAnd:
		return precAnd
	case model.TK_Plus, model.TK_Minus:
		return precAddSub
	case model.TK_Star, model.TK_Slash, model.TK_Percent:
		return precMulDiv
	default:
		return precLowest
	}
}

// operatorName is the built-in each binary operator token desugars to.
func operatorName(kind model.TokenKind) string {
	switch kind {
	case model.TK_OrOr:
		return "||"
	case model.TK_AndAnd:
		return "&&"
	case model.TK_Plus:
		return "+"
	case model.TK_Minus:
		return "-"
	case model.TK_Star:
		return "*"
	case model.TK_Slash:
		return "/"
	case model.TK_Percent:
		return "%"
	default:
		return ""
	}
}

func isBinaryOperator(kind model.TokenKind) bool {
	switch kind {
	case model.TK_OrOr, model.TK_AndAnd, model.TK_Plus, model.TK_Minus, model.TK_Star, model.TK_Slash, model.TK_Percent:
		return true
	default:
		return false
	}
}
