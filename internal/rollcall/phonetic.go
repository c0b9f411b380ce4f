package rollcall

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

var phoneticArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	// Non-Han runes pass through unchanged so romanized input ("zhang san")
	// keys to itself and can be compared against transliterated Han text.
	a.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}()

// PhoneticKey transliterates text into a romanized key: each Han character
// maps to its pinyin, all other runes pass through, tokens concatenated
// without separators. Deterministic and locale-independent.
func PhoneticKey(s string) string {
	return strings.Join(pinyin.LazyConvert(s, &phoneticArgs), "")
}

// Similarity returns a phonetic similarity ratio in [0,1] between two
// strings: 2·LCS/(len(a)+len(b)) over their phonetic keys. Returns 0 when
// either input is empty. Symmetric by construction.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ka := []rune(PhoneticKey(a))
	kb := []rune(PhoneticKey(b))
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	common := lcsLength(ka, kb)
	return 2 * float64(common) / float64(len(ka)+len(kb))
}

// lcsLength computes the longest-common-subsequence length with a
// two-row DP table.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
