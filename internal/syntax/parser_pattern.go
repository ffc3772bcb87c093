// Pattern parsing lives in its own file, mirroring
// ATSOTECK-rage/internal/compiler/parser_pattern.go's split of `match`/
// `case` pattern parsing out of the main expression grammar.
package syntax

import (
	"fmt"
	"strconv"

	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
)

func (p *Parser) startsPattern() bool {
	switch p.current().Kind {
	case model.TK_Identifier, model.TK_IntLit, model.TK_True, model.TK_False, model.TK_LAngle, model.TK_Underscore:
		return true
	default:
		return false
	}
}

// parsePattern implements spec §6's
// `pattern := IDENT | INT | "true" | "false" | "<" IDENT pattern* ">"`.
func (p *Parser) parsePattern() pattern.Pattern {
	tok := p.current()
	switch tok.Kind {
	case model.TK_Underscore:
		p.advance()
		return pattern.Variable{Name: "_"}
	case model.TK_Identifier:
		p.advance()
		return pattern.Variable{Name: tok.Literal}
	case model.TK_IntLit:
		p.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.addError(fmt.Sprintf("invalid integer literal %q", tok.Literal))
		}
		return pattern.Literal{Tag: "Int", Value: pattern.Int(n)}
	case model.TK_True:
		p.advance()
		return pattern.Literal{Tag: "Bool", Value: pattern.Bool(true)}
	case model.TK_False:
		p.advance()
		return pattern.Literal{Tag: "Bool", Value: pattern.Bool(false)}
	case model.TK_LAngle:
		p.advance()
		name := p.expect(model.TK_Identifier)
		var children []pattern.Pattern
		for p.startsPattern() {
			children = append(children, p.parsePattern())
		}
		p.expect(model.TK_RAngle)
		return pattern.Object{Tag: name.Literal, Children: children}
	default:
		p.addError(fmt.Sprintf("expected pattern, got %s", tok.Kind))
		p.advance()
		return pattern.Variable{Name: "_"}
	}
}
