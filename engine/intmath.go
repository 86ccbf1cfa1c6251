package engine

import "github.com/cockroachdb/apd"

// int32 arithmetic checked for overflow via apd: compute in decimal under
// a trapping context, then reject any result whose int64 form falls
// outside int32's range. apd's Decimal has no native notion of int32
// bounds, so the range check follows the trap check.
var intCtx = apd.Context{
	Precision:   20,
	MaxExponent: 20,
	MinExponent: -20,
	Traps:       apd.DefaultTraps,
}

const (
	int32Min = -(1 << 31)
	int32Max = (1 << 31) - 1
)

// checkedOp runs op against a and b's decimal forms and reports whether the
// apd result fits in int32, alongside the result itself.
func checkedOp(a, b Int, op func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)) (Int, bool) {
	var x, y, result apd.Decimal
	x.SetInt64(int64(a))
	y.SetInt64(int64(b))

	cond, err := op(&intCtx, &result, &x, &y)
	if err != nil || cond&intCtx.Traps != 0 {
		return 0, false
	}

	i, err := result.Int64()
	if err != nil || i < int32Min || i > int32Max {
		return 0, false
	}
	return Int(i), true
}

// AddChecked returns a+b and false if the sum overflows int32.
func AddChecked(a, b Int) (Int, bool) {
	return checkedOp(a, b, (*apd.Context).Add)
}

// SubChecked returns a-b and false if the difference overflows int32.
func SubChecked(a, b Int) (Int, bool) {
	return checkedOp(a, b, (*apd.Context).Sub)
}

// MulChecked returns a*b and false if the product overflows int32.
func MulChecked(a, b Int) (Int, bool) {
	return checkedOp(a, b, (*apd.Context).Mul)
}

// PowChecked returns a**b and false if b is negative (undefined over Int)
// or any intermediate product overflows int32. Computed by repeated
// MulChecked so the same trap-checked multiply backs both this and
// IntMul.
func PowChecked(a, b Int) (Int, bool) {
	if b < 0 {
		return 0, false
	}
	result := Int(1)
	for i := Int(0); i < b; i++ {
		var ok bool
		result, ok = MulChecked(result, a)
		if !ok {
			return 0, false
		}
	}
	return result, true
}
