package report

import "golang.org/x/text/unicode/norm"

// winAnsiHigh maps the runes WinAnsiEncoding places in the 0x80-0x9F
// range that CP-1252 repurposes from Latin-1 control codes.
// See PDF Reference Appendix D.2.
var winAnsiHigh = map[rune]byte{
	'€': 0x80, // €
	'‚': 0x82, // ‚
	'ƒ': 0x83, // ƒ
	'„': 0x84, // „
	'…': 0x85, // …
	'†': 0x86, // †
	'‡': 0x87, // ‡
	'ˆ': 0x88, // ˆ
	'‰': 0x89, // ‰
	'Š': 0x8A, // Š
	'‹': 0x8B, // ‹
	'Œ': 0x8C, // Œ
	'Ž': 0x8E, // Ž
	'‘': 0x91, // '
	'’': 0x92, // '
	'“': 0x93, // "
	'”': 0x94, // "
	'•': 0x95, // •
	'–': 0x96, // –
	'—': 0x97, // —
	'˜': 0x98, // ˜
	'™': 0x99, // ™
	'š': 0x9A, // š
	'›': 0x9B, // ›
	'œ': 0x9C, // œ
	'ž': 0x9E, // ž
	'Ÿ': 0x9F, // Ÿ
}

// transliterations substitutes ASCII spellings for runes outside
// WinAnsi that the proposal content actually uses (comparison and
// arrow glyphs). Anything not covered degrades to '?'.
var transliterations = map[rune]string{
	'≤': "<=",  // ≤
	'≥': ">=",  // ≥
	'≠': "!=",  // ≠
	'≈': "~",   // ≈
	'→': "->",  // →
	'←': "<-",  // ←
	'↔': "<->", // ↔
	'−': "-",   // − minus sign
	'′': "'",   // ′
	'″': "\"",  // ″
}

// encodeWinAnsi converts s to WinAnsi bytes after NFC normalization,
// so composed and decomposed accent forms encode identically.
func encodeWinAnsi(s string) []byte {
	s = norm.NFC.String(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			out = append(out, byte(r))
		case r >= 0xA0 && r <= 0xFF:
			out = append(out, byte(r))
		default:
			if b, ok := winAnsiHigh[r]; ok {
				out = append(out, b)
				continue
			}
			if sub, ok := transliterations[r]; ok {
				out = append(out, sub...)
				continue
			}
			out = append(out, '?')
		}
	}
	return out
}

// escapeText escapes the delimiters a PDF literal string reserves.
func escapeText(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '\\', '(', ')':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return out
}
