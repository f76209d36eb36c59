package types

import "fmt"

// Coercion identifies the IR-level conversion operation needed to coerce a
// value of one Type to another, per the matrix in spec.md §4.2. It is
// returned to the caller (lang/compiler) so the actual IR instruction can be
// emitted through the abstract IR-builder contract (spec.md §6.3); this
// package stays free of any IR dependency.
type Coercion int8

const (
	// Identity means no instruction is needed — the value is reused as-is
	// (from and to are the same type; a same-width signedness change is
	// Bitcast).
	Identity Coercion = iota
	// Bitcast reinterprets an integer's signedness tag without changing bits
	// (same-width signed<->unsigned, incl. bool).
	Bitcast
	FPExt    // f32 -> f64
	FPTrunc  // f64 -> f32
	FPToSI   // float -> signed int
	FPToUI   // float -> unsigned int (incl. bool)
	SIToFP   // signed int -> float
	UIToFP   // unsigned int (incl. bool) -> float
	SExt     // signed int widening
	ZExt     // unsigned int or bool widening
	Trunc    // integer narrowing (either signedness)
	FPToBool // float != 0.0
	IntToBool
)

// Coerce determines how to convert a value of type from to type to,
// following spec.md §4.2's coercion matrix exactly. It returns an error
// (never emits a diagnostic itself — the caller owns position context) if
// the conversion falls outside the matrix.
func Coerce(from, to Type) (Coercion, error) {
	if from == to {
		return Identity, nil
	}

	switch {
	case from == Void || to == Void:
		// void <-> void is the only void case, handled by the from==to check
		// above; any other combination involving void is illegal.
		return Identity, fmt.Errorf("cannot coerce type '%s' to '%s'", from, to)

	case from.IsFloat() && to.IsFloat():
		if from.Width() < to.Width() {
			return FPExt, nil
		}
		return FPTrunc, nil

	case from.IsFloat() && to.IsBool():
		return FPToBool, nil
	case from.IsFloat() && to.IsSigned():
		return FPToSI, nil
	case from.IsFloat() && to.IsUnsigned():
		return FPToUI, nil

	case to.IsFloat() && from.IsSigned():
		return SIToFP, nil
	case to.IsFloat() && (from.IsUnsigned()):
		return UIToFP, nil

	case from.IsBool() && to.IsBool():
		return Identity, nil
	case (from.IsSigned() || from.IsUnsigned()) && to.IsBool():
		return IntToBool, nil

	case (from.IsSigned() || from.IsUnsigned()) && (to.IsSigned() || to.IsUnsigned()):
		switch {
		case from.Width() == to.Width():
			return Bitcast, nil
		case from.Width() < to.Width():
			if from.IsSigned() {
				return SExt, nil
			}
			return ZExt, nil
		default:
			return Trunc, nil
		}
	}

	return Identity, fmt.Errorf("cannot coerce type '%s' to '%s'", from, to)
}

var coercionNames = [...]string{
	Identity:  "identity",
	Bitcast:   "bitcast",
	FPExt:     "fpext",
	FPTrunc:   "fptrunc",
	FPToSI:    "fptosi",
	FPToUI:    "fptoui",
	SIToFP:    "sitofp",
	UIToFP:    "uitofp",
	SExt:      "sext",
	ZExt:      "zext",
	Trunc:     "trunc",
	FPToBool:  "fptobool",
	IntToBool: "inttobool",
}

func (c Coercion) String() string {
	if int(c) < 0 || int(c) >= len(coercionNames) {
		return fmt.Sprintf("Coercion(%d)", int(c))
	}
	return coercionNames[c]
}
