package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/symbols"
	"github.com/anxlang/anxc/lang/types"
)

// numLit lowers a numeric literal (spec.md §4.6 "Numeric literal
// lowering"). Character literals reach here too: the parser already
// rewrote them to a raw lexeme ending in "i8" (spec.md §4.6 "Character
// literal lowering").
func (fc *fcomp) numLit(n *ast.Num) (symbols.Value, types.Type) {
	mantissa, radix, isFloat, suffix, err := splitNumeric(n.Raw)
	if err != nil {
		fc.pc.diag.FailAt(err.Error(), n.Pos, n.Size)
		panic("unreachable")
	}

	var dtype types.Type
	haveSuffix := suffix != ""
	if haveSuffix {
		dtype, err = types.FromString(suffix, false)
		if err != nil {
			fc.pc.diag.FailAt(err.Error(), n.Pos, n.Size)
			panic("unreachable")
		}
	}

	var v symbols.Value
	var synthType types.Type
	if isFloat {
		f, err := strconv.ParseFloat(mantissa, 64)
		if err != nil {
			fc.pc.diag.FailAt(fmt.Sprintf("invalid numeric literal '%s'", n.Raw), n.Pos, n.Size)
			panic("unreachable")
		}
		synthType = types.F32
		if dtype.IsDouble() {
			synthType = types.F64
		}
		v = fc.pc.b.ConstFloat(synthType, f)
	} else {
		val, err := strconv.ParseUint(mantissa, radix, 64)
		if err != nil {
			fc.pc.diag.FailAt(fmt.Sprintf("invalid numeric literal '%s'", n.Raw), n.Pos, n.Size)
			panic("unreachable")
		}
		synthType = minUnsignedWidth(val)
		v = fc.pc.b.ConstInt(synthType, val, radix)
	}

	if haveSuffix {
		v = fc.coerce(v, synthType, dtype, n.Pos, n.Size)
		return v, dtype
	}
	return v, synthType
}

// minUnsignedWidth returns the narrowest of {u32, u64, u128} that fits val
// (spec.md §4.6 step 4: "smallest of {32, 64, 128} that fits the parsed
// value"). u128 is unreachable here: val is parsed into a uint64 (the
// widest integer irbuilder.Builder.ConstInt accepts), so it can never
// exceed u64's range; a literal that genuinely needs 65-128 bits of
// magnitude is outside what the abstract builder contract can represent.
func minUnsignedWidth(val uint64) types.Type {
	switch {
	case val <= 1<<32-1:
		return types.U32
	default:
		return types.U64
	}
}

// splitNumeric re-derives the mantissa/radix/suffix split the scanner
// already validated lexically (lang/scanner/number.go), since the raw
// lexeme is handed through unchanged. Returns the digits to parse
// (including "." for a float, excluding the radix prefix and underscores),
// the radix, whether a "." was present, and the raw suffix string (empty
// if absent).
func splitNumeric(raw string) (mantissa string, radix int, isFloat bool, suffix string, err error) {
	i := 0
	radix = 10
	if len(raw) >= 2 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X':
			radix, i = 16, 2
		case 'b', 'B':
			radix, i = 2, 2
		case 'o', 'O':
			radix, i = 8, 2
		}
	}

	var b strings.Builder
	for i < len(raw) && isRadixByte(raw[i], radix) {
		if raw[i] != '_' {
			b.WriteByte(raw[i])
		}
		i++
	}

	if i < len(raw) && raw[i] == '.' {
		isFloat = true
		b.WriteByte('.')
		i++
		for i < len(raw) && (isDecByte(raw[i]) || raw[i] == '_') {
			if raw[i] != '_' {
				b.WriteByte(raw[i])
			}
			i++
		}
	}

	suffix = raw[i:]
	mantissa = b.String()
	if mantissa == "" || mantissa == "." {
		return "", 0, false, "", fmt.Errorf("number literal has no value")
	}
	return mantissa, radix, isFloat, suffix, nil
}

func isDecByte(c byte) bool { return c >= '0' && c <= '9' }

func isRadixByte(c byte, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1' || c == '_'
	case 8:
		return c >= '0' && c <= '7' || c == '_'
	case 16:
		return isDecByte(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' || c == '_'
	default:
		return isDecByte(c) || c == '_'
	}
}
