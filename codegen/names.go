package codegen

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Identifiers used in generated code
const (
	inputName     = "input"
	visitedName   = "visited"
	capturesName  = "captures"
	endName       = "end"
	startName     = "start"
	posName       = "pos"
	receiverName  = "m"
	matcherSuffix = "Matcher"
)

// stepName returns the method name for the k-th matcher step.
func stepName(k int) string {
	return "step" + strconv.Itoa(k)
}

// lowerFirst converts the first character of s to lower case.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
