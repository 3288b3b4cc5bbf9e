package rangeproof

import "github.com/shieldedpay/confproof/ristretto"

func onesVector(n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	for i := range out {
		out[i] = ristretto.OneScalar()
	}
	return out
}

func constVector(c ristretto.Scalar, n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// powersOf returns [x^0, x^1, ..., x^(n-1)].
func powersOf(x ristretto.Scalar, n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	cur := ristretto.OneScalar()
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(x)
	}
	return out
}

func vectorAdd(a, b []ristretto.Scalar) []ristretto.Scalar {
	out := make([]ristretto.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

func vectorSub(a, b []ristretto.Scalar) []ristretto.Scalar {
	out := make([]ristretto.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Sub(b[i])
	}
	return out
}

func vectorMul(a, b []ristretto.Scalar) []ristretto.Scalar {
	out := make([]ristretto.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Mul(b[i])
	}
	return out
}

func vectorScalarMul(a []ristretto.Scalar, c ristretto.Scalar) []ristretto.Scalar {
	out := make([]ristretto.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Mul(c)
	}
	return out
}

func innerProduct(a, b []ristretto.Scalar) ristretto.Scalar {
	sum := ristretto.ZeroScalar()
	for i := range a {
		sum = sum.Add(a[i].Mul(b[i]))
	}
	return sum
}
