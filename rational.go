// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

// rational is a non-negative fraction num/den, den > 0. Zero value is the
// zero fraction 0/0, used as the "unset" sentinel during repetition-vector
// propagation (see repvec.go): a candidate is considered unset exactly
// when its numerator is zero.
//
// Grounded on original_source/src/csdf/utility.{h,c} (Rational, gcd, lcm,
// set_rational_value, reduce_rational_value, is_rational_zero,
// rational_eq), generalized from unsigned int to uint64 so that larger
// graphs don't silently wrap.
type rational struct {
	num uint64
	den uint64
}

// setRational sets r to num/den without reducing.
func setRational(r *rational, num, den uint64) {
	r.num = num
	r.den = den
}

// reduceRational reduces r to lowest terms via GCD. No-op on 0/0.
func reduceRational(r *rational) {
	if r.num == 0 {
		return
	}
	div := gcdUint64(r.num, r.den)
	r.num /= div
	r.den /= div
}

// setReduceRational sets r to num/den, then reduces it.
func setReduceRational(r *rational, num, den uint64) {
	setRational(r, num, den)
	reduceRational(r)
}

// isRationalZero reports whether r is unset (numerator 0).
func isRationalZero(r *rational) bool {
	return r.num == 0
}

// rationalEq reports whether r equals num/den, via cross-multiplication
// (avoids needing both sides reduced to the same terms).
func rationalEq(r *rational, num, den uint64) bool {
	return r.num*den == r.den*num
}

// gcdUint64 returns the greatest common divisor of a and b.
func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcmUint64 returns the least common multiple of a and b, and false if the
// result overflowed uint64 (GraphTooLarge territory — see repvec.go).
func lcmUint64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	g := gcdUint64(a, b)
	quotient := a / g
	result := quotient * b
	if quotient != 0 && result/quotient != b {
		return 0, false // overflow
	}
	return result, true
}
