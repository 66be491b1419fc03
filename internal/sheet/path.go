package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"go.gopad.dev/go-syntax-highlight/internal/treepath"
)

// parseTreePath reads a tree path expression written the way a property
// sheet author would: a dotted chain of calls starting implicitly from
// the matched node, e.g. `children().child(-1, "field_identifier")`.
func parseTreePath(src string) (*treepath.Expr, error) {
	p := &pathParser{src: src}
	expr, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected trailing input in tree path %q", src)
	}
	return expr, nil
}

type pathParser struct {
	src string
	pos int
}

func (p *pathParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *pathParser) parseChain() (*treepath.Expr, error) {
	var expr *treepath.Expr
	for {
		p.skipSpace()
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '(' {
			return nil, fmt.Errorf("expected '(' after %q in tree path %q", name, p.src)
		}
		p.pos++ // consume '('

		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		expr = &treepath.Expr{Name: name, Receiver: expr, Args: args}

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '.' {
			p.pos++
			continue
		}
		break
	}
	return expr, nil
}

func (p *pathParser) parseIdent() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("expected identifier at position %d in tree path %q", start, p.src)
	}
	return p.src[start:p.pos], nil
}

func (p *pathParser) parseArgs() ([]treepath.Arg, error) {
	var args []treepath.Arg
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ')' {
		p.pos++
		return args, nil
	}

	for {
		p.skipSpace()
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated argument list in tree path %q", p.src)
		}
		if p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.src[p.pos] == ')' {
			p.pos++
			return args, nil
		}
		return nil, fmt.Errorf("expected ',' or ')' in tree path %q", p.src)
	}
}

func (p *pathParser) parseArg() (treepath.Arg, error) {
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != '"' {
			p.pos++
		}
		if p.pos >= len(p.src) {
			return treepath.Arg{}, fmt.Errorf("unterminated string literal in tree path %q", p.src)
		}
		s := p.src[start:p.pos]
		p.pos++ // consume closing quote
		return treepath.Arg{String: &s}, nil
	}

	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return treepath.Arg{}, fmt.Errorf("expected string or number argument in tree path %q", p.src)
	}
	n, err := strconv.Atoi(strings.TrimSpace(p.src[start:p.pos]))
	if err != nil {
		return treepath.Arg{}, fmt.Errorf("invalid number in tree path %q: %w", p.src, err)
	}
	return treepath.Arg{Number: &n}, nil
}
