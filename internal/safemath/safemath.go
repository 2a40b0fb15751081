package safemath

import (
	"math/bits"

	"github.com/shariqazeem/umanity-social/internal/errs"
)

// 受控的 uint64 算术。任何溢出都返回错误，由调用方中止整个操作，
// 绝不允许回绕或饱和。

// Add 受控加法
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errs.ErrMathOverflow
	}
	return sum, nil
}

// Mul 受控乘法
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, errs.ErrMathOverflow
	}
	return lo, nil
}

// Div 受控除法，除零视为溢出错误
func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, errs.ErrMathOverflow
	}
	return a / b, nil
}

// MulDiv 先乘后除：floor(a*b/d)。先乘以保留精度，乘法溢出即失败。
func MulDiv(a, b, d uint64) (uint64, error) {
	p, err := Mul(a, b)
	if err != nil {
		return 0, err
	}
	return Div(p, d)
}
