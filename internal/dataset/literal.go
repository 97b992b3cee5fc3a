package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed serialized cell. Callers decide whether
// to surface it or degrade to an empty mapping; both styles exist
// downstream and the aggregation layers tolerate either.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	in := e.Input
	if len(in) > 50 {
		in = in[:50] + "..."
	}
	return fmt.Sprintf("malformed literal at offset %d: %s (input %q)", e.Pos, e.Msg, in)
}

// Pair is one (name, value) entry of a serialized cell, in source order.
type Pair struct {
	Name  string
	Value float64
}

// ParsePairs decodes a serialized pair list such as
// [('k1', 0.53), ['k2', '6.7e-1']] into its entries. Tuple and list
// delimiters are interchangeable and values may be quoted. Empty
// encodings ("", "[]", "nan", "NaN") decode to no entries and no error.
func ParsePairs(s string) ([]Pair, error) {
	if isEmptyLiteral(s) {
		return nil, nil
	}
	p := &literalParser{src: s}
	pairs, err := p.pairList()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing data after list")
	}
	return pairs, nil
}

// ParseDict decodes a serialized mapping such as {'k5': 0.539, 'k6': 0.672}.
// Empty encodings ("", "{}", "nan", "NaN") decode to no entries and no error.
func ParseDict(s string) ([]Pair, error) {
	if isEmptyLiteral(s) {
		return nil, nil
	}
	p := &literalParser{src: s}
	pairs, err := p.dict()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing data after dict")
	}
	return pairs, nil
}

// PairsMap is ParsePairs collapsed to a name->value map (later duplicates win).
func PairsMap(s string) (map[string]float64, error) {
	pairs, err := ParsePairs(s)
	if err != nil {
		return nil, err
	}
	return toMap(pairs), nil
}

// DictMap is ParseDict collapsed to a name->value map (later duplicates win).
func DictMap(s string) (map[string]float64, error) {
	pairs, err := ParseDict(s)
	if err != nil {
		return nil, err
	}
	return toMap(pairs), nil
}

func toMap(pairs []Pair) map[string]float64 {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[p.Name] = p.Value
	}
	return m
}

func isEmptyLiteral(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "[]", "{}", "nan", "NaN":
		return true
	}
	return false
}

// literalParser is a tiny recursive-descent scanner for the subset of
// literal syntax the dataset uses: lists, tuples, dicts, quoted strings,
// and numbers.
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *literalParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *literalParser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return p.errorf("unexpected end of input, want %q", string(c))
	}
	if got != c {
		return p.errorf("unexpected %q, want %q", string(got), string(c))
	}
	p.pos++
	return nil
}

func (p *literalParser) pairList() ([]Pair, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var pairs []Pair
	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated list")
		}
		if c == ']' {
			p.pos++
			return pairs, nil
		}
		pair, err := p.pair()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
		c, ok = p.peek()
		if !ok {
			return nil, p.errorf("unterminated list")
		}
		switch c {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.errorf("unexpected %q in list", string(c))
		}
	}
}

// pair reads one ('name', value) tuple; list brackets are accepted in
// place of parentheses because both forms occur in the CSV.
func (p *literalParser) pair() (Pair, error) {
	open, ok := p.peek()
	if !ok {
		return Pair{}, p.errorf("unexpected end of input, want pair")
	}
	var closing byte
	switch open {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	default:
		return Pair{}, p.errorf("unexpected %q, want pair", string(open))
	}
	p.pos++
	name, err := p.quotedString()
	if err != nil {
		return Pair{}, err
	}
	if err := p.expect(','); err != nil {
		return Pair{}, err
	}
	value, err := p.value()
	if err != nil {
		return Pair{}, err
	}
	if err := p.expect(closing); err != nil {
		return Pair{}, err
	}
	return Pair{Name: name, Value: value}, nil
}

func (p *literalParser) dict() ([]Pair, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	var pairs []Pair
	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated dict")
		}
		if c == '}' {
			p.pos++
			return pairs, nil
		}
		name, err := p.quotedString()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
		c, ok = p.peek()
		if !ok {
			return nil, p.errorf("unterminated dict")
		}
		switch c {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, p.errorf("unexpected %q in dict", string(c))
		}
	}
}

func (p *literalParser) quotedString() (string, error) {
	quote, ok := p.peek()
	if !ok {
		return "", p.errorf("unexpected end of input, want string")
	}
	if quote != '\'' && quote != '"' {
		return "", p.errorf("unexpected %q, want quoted string", string(quote))
	}
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", p.errorf("dangling escape")
			}
			p.pos++
			sb.WriteByte(p.src[p.pos])
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

// value reads a number, possibly wrapped in quotes (estimates are
// sometimes serialized as numeric strings).
func (p *literalParser) value() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, p.errorf("unexpected end of input, want value")
	}
	if c == '\'' || c == '"' {
		s, err := p.quotedString()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, p.errorf("quoted value %q is not a number", s)
		}
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.src) && isNumberByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("unexpected %q, want number", string(c))
	}
	token := p.src[start:p.pos]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid number %q", token)
	}
	return v, nil
}

func isNumberByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		return true
	case c == 'i' || c == 'n' || c == 'f' || c == 'a' || c == 'N' || c == 'I':
		// inf and nan spellings
		return true
	}
	return false
}
