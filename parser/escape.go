package parser

// escapeBytes is the closed set of string-literal escapes the scanner
// recognizes. Any other byte following a backslash is a lexical error,
// not a sequence "preserved as-is" - unlike a textual preprocessor, this
// lexer never passes an escape sequence through unresolved.
var escapeBytes = map[byte]byte{
	'0':  0,
	'b':  7,
	't':  9,
	'n':  10,
	'v':  11,
	'r':  13,
	'"':  34,
	'\'': 39,
	'\\': 92,
}

// decodeEscape looks up the byte value for the character following a
// backslash. ok is false for any escape outside the closed set above.
func decodeEscape(b byte) (byte, bool) {
	v, ok := escapeBytes[b]
	return v, ok
}
