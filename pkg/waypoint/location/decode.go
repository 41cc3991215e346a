package location

import (
	"strings"
	"unicode/utf8"
)

// uriReserved lists the characters whose escapes survive decoding, so an
// escaped "/" or "?" is never mistaken for path or query syntax.
const uriReserved = ";/?:@&=+$,#"

// decode percent-decodes a URL the way browsers' decodeURI does. Escapes of
// reserved characters are kept as written. A malformed escape or an escaped
// byte sequence that is not UTF-8 leaves the whole string undecoded.
func decode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}

		c, ok := unhex(s, i)
		if !ok {
			return s
		}
		if c < utf8.RuneSelf {
			if strings.IndexByte(uriReserved, c) >= 0 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}

		n := sequenceLen(c)
		if n == 0 {
			return s
		}
		seq := []byte{c}
		for k := 1; k < n; k++ {
			cont, ok := unhex(s, i+3*k)
			if !ok || cont&0xC0 != 0x80 {
				return s
			}
			seq = append(seq, cont)
		}
		if r, size := utf8.DecodeRune(seq); r == utf8.RuneError || size != n {
			return s
		}
		b.Write(seq)
		i += 3 * n
	}
	return b.String()
}

// unhex reads the escape "%XX" starting at s[i].
func unhex(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := fromHex(s[i+1])
	lo, ok2 := fromHex(s[i+2])
	return hi<<4 | lo, ok1 && ok2
}

func fromHex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// sequenceLen returns the UTF-8 sequence length announced by a lead byte,
// or 0 if c cannot start a sequence.
func sequenceLen(c byte) int {
	switch {
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}
