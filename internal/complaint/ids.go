package complaint

import "math/rand"

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idDigits  = "0123456789"
)

// NewID generates a complaint id of the form CMP-XXXXXX: six shuffled
// characters with 2-4 distinct letters and the rest distinct digits.
func NewID() string {
	return "CMP-" + RandomCode(6, 2+rand.Intn(3))
}

// RandomCode builds a code of length total with letterCount distinct random
// letters and total-letterCount distinct random digits, shuffled together.
func RandomCode(total, letterCount int) string {
	code := make([]byte, 0, total)
	code = append(code, pick(idLetters, letterCount)...)
	code = append(code, pick(idDigits, total-letterCount)...)
	rand.Shuffle(len(code), func(i, j int) {
		code[i], code[j] = code[j], code[i]
	})
	return string(code)
}

// pick returns n distinct random bytes from alphabet.
func pick(alphabet string, n int) []byte {
	perm := rand.Perm(len(alphabet))
	out := make([]byte, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, alphabet[idx])
	}
	return out
}
