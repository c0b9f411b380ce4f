package rollcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneticKey_HanAndLatin(t *testing.T) {
	assert.Equal(t, "zhangsan", PhoneticKey("张三"))
	// Non-Han runes pass through unchanged.
	assert.Equal(t, "zhang san", PhoneticKey("zhang san"))
}

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("张三", "张三"))
}

func TestSimilarity_RomanizedName(t *testing.T) {
	sim := Similarity("张三", "zhang san")
	assert.Greater(t, sim, 0.6)
}

func TestSimilarity_Symmetric(t *testing.T) {
	assert.Equal(t, Similarity("张三", "李四"), Similarity("李四", "张三"))
}

func TestSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "张三"))
	assert.Equal(t, 0.0, Similarity("张三", ""))
}

func TestSimilarity_Disjoint(t *testing.T) {
	// No common phonetic subsequence at all.
	assert.Equal(t, 0.0, Similarity("bb", "cc"))
}
