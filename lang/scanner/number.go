package scanner

import "github.com/anxlang/anxc/lang/token"

// number scans a numeric literal per spec §4.3: an optional radix prefix,
// a mantissa (with '.' only in decimal), and an optional type suffix. The
// full raw lexeme (prefix, underscores, dot, suffix all included) is
// handed to the parser/compiler unchanged — lang/compiler's numeric-literal
// lowering (§4.6) does the suffix parsing and minimum-width inference; this
// scanner only enforces the lexical-level digit-range and float-format
// rules that belong to tokenization.
func (s *Scanner) number(pos token.Pos) token.Token {
	start := s.off
	radix := 10

	if s.cur == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		radix = 16
		s.advance()
		s.advance()
	} else if s.cur == '0' && (s.peek() == 'b' || s.peek() == 'B') {
		radix = 2
		s.advance()
		s.advance()
	} else if s.cur == '0' && (s.peek() == 'o' || s.peek() == 'O') {
		radix = 8
		s.advance()
		s.advance()
	}

	for isRadixDigit(s.cur, radix) || s.cur == '_' {
		s.advance()
	}
	if (radix == 2 || radix == 8) && isDigit(s.cur) {
		s.diag.FailAt("invalid digit in binary/octal literal", pos, s.off-start+1)
	}
	if radix != 10 && (s.cur == '.' || s.cur == 'f') {
		s.diag.FailAt("hex/binary/octal float literal is not supported", pos, s.off-start+1)
	}
	if s.cur == '.' {
		s.advance()
		for isRadixDigit(s.cur, 10) || s.cur == '_' {
			s.advance()
		}
	}

	if s.cur == 'i' || s.cur == 'u' || s.cur == 'f' {
		// suffix: [iuf] digits
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}

	lit := string(s.src[start:s.off])
	return token.Token{Kind: token.NUMBER, Lexeme: lit, Pos: pos, Size: len(lit)}
}

func isRadixDigit(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return '0' <= r && r <= '7'
	case 16:
		return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
	default:
		return isDigit(r)
	}
}
