package rs

import (
	"fmt"

	"github.com/n0call/axfx25/internal/gf"
)

// modNN reduces x into [0, N) the way Karn's MODNN macro does, generalized
// to tolerate the negative intermediate sums Forney's formula produces.
func modNN(x int) int {
	for x < 0 {
		x += N
	}
	for x >= N {
		x -= N
	}
	return x
}

// Decode implements spec.md's §4.9 pipeline: syndromes, Berlekamp-Massey,
// Chien search, Forney correction, consistency check. It is a direct
// idiomatic-Go port of decode_rs_char from fx25_extract.go (the classic
// Phil Karn decoder), adapted from the teacher's goto-based C-in-Go
// transliteration to ordinary Go control flow, and generalized from a
// single hardcoded RS(255,239) instance to an arbitrary Nroots.
//
// Decode never mutates received. It returns a corrected copy and the
// number of symbols corrected (0 meaning the block already verified
// clean). When the block cannot be corrected, it returns a copy of
// received unmodified alongside ErrUncorrectable: callers that must
// "emit the received word unchanged" (spec.md §7's Uncorrectable policy)
// can use the returned slice directly.
func (c *Codec) Decode(received []byte) ([]byte, int, error) {
	if len(received) != N {
		return nil, 0, fmt.Errorf("rs: decode: %w: want %d bytes, got %d", ErrInvalidInput, N, len(received))
	}

	var nroots = c.Nroots
	var corrected = append([]byte(nil), received...)

	// 1. Syndromes via Horner's method. Symbol 0 (the first data byte) is
	// the highest-degree coefficient of the codeword polynomial, matching
	// the encoder's bb[0]-feedback convention in parity().
	var syn = make([]byte, nroots)
	for i := range syn {
		syn[i] = received[0]
	}
	for j := 1; j < N; j++ {
		for i := range syn {
			if syn[i] == 0 {
				syn[i] = received[j]
			} else {
				syn[i] = received[j] ^ gf.Exp(modNN(int(gf.Log(syn[i]))+i))
			}
		}
	}

	var synError byte
	for _, v := range syn {
		synError |= v
	}
	if synError == 0 {
		return corrected, 0, nil
	}

	// Convert syndromes to index (log) form for the rest of the pipeline.
	var synLog = make([]byte, nroots)
	for i, v := range syn {
		synLog[i] = gf.Log(v)
	}

	// 2. Berlekamp-Massey: lambda (error-locator) stays in coefficient
	// form; b (the scaled previous iterate) is kept in index form, with
	// gf.A0 as its "this coefficient is zero" sentinel.
	var lambda = make([]byte, nroots+1)
	lambda[0] = 1
	var b = make([]byte, nroots+1)
	for i := range b {
		b[i] = gf.Log(lambda[i])
	}
	var t = make([]byte, nroots+1)

	var el = 0
	for r := 1; r <= nroots; r++ {
		var discr byte
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && synLog[r-i-1] != gf.A0 {
				discr ^= gf.Exp(modNN(int(gf.Log(lambda[i])) + int(synLog[r-i-1])))
			}
		}
		var discrLog = gf.Log(discr)

		if discrLog == gf.A0 {
			copy(b[1:], b)
			b[0] = gf.A0
			continue
		}

		t[0] = lambda[0]
		for i := 0; i < nroots; i++ {
			if b[i] != gf.A0 {
				t[i+1] = lambda[i+1] ^ gf.Exp(modNN(int(discrLog)+int(b[i])))
			} else {
				t[i+1] = lambda[i+1]
			}
		}

		if 2*el <= r-1 {
			el = r - el
			for i := 0; i <= nroots; i++ {
				if lambda[i] == 0 {
					b[i] = gf.A0
				} else {
					b[i] = byte(modNN(int(gf.Log(lambda[i])) - int(discrLog) + N))
				}
			}
		} else {
			copy(b[1:], b)
			b[0] = gf.A0
		}
		copy(lambda, t)
	}

	// Convert lambda to index form and find its degree.
	var degLambda = 0
	var lambdaLog = make([]byte, nroots+1)
	for i, v := range lambda {
		lambdaLog[i] = gf.Log(v)
		if lambdaLog[i] != gf.A0 {
			degLambda = i
		}
	}

	if degLambda == 0 {
		// Nonzero syndromes but a degree-0 locator: the decoder
		// conservatively reports no correction rather than guessing.
		return corrected, 0, nil
	}

	// 3. Chien search: evaluate lambda at alpha^-i for every position.
	var reg = make([]byte, nroots+1)
	copy(reg[1:], lambdaLog[1:])
	var root = make([]byte, nroots)
	var loc = make([]byte, nroots)
	var count = 0
	var k = N - 1 // becomes IPRIM-1 = 0 on the first pass (IPRIM=1, prim=1)
	for i := 1; i <= N; i++ {
		k = modNN(k + 1)
		var q byte = 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != gf.A0 {
				reg[j] = byte(modNN(int(reg[j]) + j))
				q ^= gf.Exp(int(reg[j]))
			}
		}
		if q != 0 {
			continue
		}
		root[count] = byte(i)
		loc[count] = byte(k)
		count++
		if count > nroots/2 {
			return append([]byte(nil), received...), 0, ErrUncorrectable
		}
		if count == degLambda {
			break
		}
	}

	if degLambda != count {
		return append([]byte(nil), received...), 0, ErrUncorrectable
	}

	// Error-evaluator polynomial omega(x) = S(x)*lambda(x) mod x^nroots.
	var degOmega = 0
	var omega = make([]byte, nroots+1)
	for i := 0; i < nroots; i++ {
		var tmp byte
		var upper = degLambda
		if i < upper {
			upper = i
		}
		for j := upper; j >= 0; j-- {
			if synLog[i-j] != gf.A0 && lambdaLog[j] != gf.A0 {
				tmp ^= gf.Exp(modNN(int(synLog[i-j]) + int(lambdaLog[j])))
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = gf.Log(tmp)
	}
	omega[nroots] = gf.A0

	// 4. Forney correction at each located error position.
	for j := count - 1; j >= 0; j-- {
		var num1 byte
		for i := degOmega; i >= 0; i-- {
			if omega[i] != gf.A0 {
				num1 ^= gf.Exp(modNN(int(omega[i]) + i*int(root[j])))
			}
		}
		var num2 = gf.Exp(modNN(-int(root[j]) + N))

		var den byte
		var top = degLambda
		if nroots-1 < top {
			top = nroots - 1
		}
		top &^= 1 // only odd-power terms of lambda survive differentiation over GF(2^m)
		for i := top; i >= 0; i -= 2 {
			if lambdaLog[i+1] != gf.A0 {
				den ^= gf.Exp(modNN(int(lambdaLog[i+1]) + i*int(root[j])))
			}
		}
		if den == 0 {
			// Formal derivative vanished at this root: skip the
			// correction at this position, per spec.md §4.9/§7 (a
			// data-driven occurrence, not a contract violation).
			continue
		}
		if num1 != 0 {
			corrected[loc[j]] ^= gf.Exp(modNN(int(gf.Log(num1)) + int(gf.Log(num2)) + N - int(gf.Log(den))))
		}
	}

	return corrected, count, nil
}
