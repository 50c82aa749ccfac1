package test

import (
	"math/rand"
	"strings"
)

const validTokens = "fn|main|(|)|->|i32|u8|void|{|}|let|x|:|=|==|<=|>=|<|>|+|-|*|/|%|,|;|return|if|else|while|123|4294967296|_under_score|// comment\n|\n"

// GetRandomTokens returns size lexically valid tokens in random order. The
// result is not a valid program.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, "|")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
