package terminal

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const esc = 0x1b

// csiKeys maps the final byte of parameterless CSI and SS3 sequences
var csiKeys = map[byte]tea.KeyType{
	'A': tea.KeyUp,
	'B': tea.KeyDown,
	'C': tea.KeyRight,
	'D': tea.KeyLeft,
	'H': tea.KeyHome,
	'F': tea.KeyEnd,
	'Z': tea.KeyShiftTab,
}

// tildeKeys maps the parameter of "CSI n ~" sequences
var tildeKeys = map[string]tea.KeyType{
	"1": tea.KeyHome,
	"2": tea.KeyInsert,
	"3": tea.KeyDelete,
	"4": tea.KeyEnd,
	"5": tea.KeyPgUp,
	"6": tea.KeyPgDown,
	"7": tea.KeyHome,
	"8": tea.KeyEnd,
}

// DecodeKeys turns a chunk of raw terminal input into key messages, in order.
// A lone ESC at the end of the chunk is the Escape key; ESC followed by a
// plain character is that character with Alt held. Unknown sequences and a
// control sequence cut off at the end of the chunk are dropped.
func DecodeKeys(b []byte) []tea.KeyMsg {
	keys, _ := decodeKeys(b)
	return keys
}

// decodeKeys is DecodeKeys that also returns the unterminated control
// sequence at the end of b, if any, so it can be completed by the next read.
func decodeKeys(b []byte) ([]tea.KeyMsg, []byte) {
	var keys []tea.KeyMsg

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == esc:
			msg, n := decodeEscape(b[i:])
			if n == 0 {
				return keys, b[i:]
			}
			if msg != nil {
				keys = append(keys, *msg)
			}
			i += n

		case c == '\r' || c == '\n':
			keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
			i++

		case c == ' ':
			keys = append(keys, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			i++

		case c < 0x20 || c == 0x7f:
			// control characters share their values with tea's ctrl key types
			keys = append(keys, tea.KeyMsg{Type: tea.KeyType(c)})
			i++

		default:
			r, size := utf8.DecodeRune(b[i:])
			if r != utf8.RuneError || size > 1 {
				keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			i += size
		}
	}
	return keys, nil
}

// decodeEscape decodes a sequence starting with ESC and returns the key (nil
// when the sequence is unknown) and the number of bytes consumed. It consumes
// nothing when a control sequence has no final byte yet.
func decodeEscape(b []byte) (*tea.KeyMsg, int) {
	if len(b) == 1 {
		return &tea.KeyMsg{Type: tea.KeyEsc}, 1
	}

	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		if len(b) < 3 {
			return &tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'O'}, Alt: true}, 2
		}
		if t, ok := csiKeys[b[2]]; ok {
			return &tea.KeyMsg{Type: t}, 3
		}
		return nil, 3
	case esc:
		return &tea.KeyMsg{Type: tea.KeyEsc}, 1
	}

	size := 1
	if b[1] >= utf8.RuneSelf {
		_, size = utf8.DecodeRune(b[1:])
	}
	keys := DecodeKeys(b[1 : 1+size])
	if len(keys) == 0 {
		return nil, 1 + size
	}
	keys[0].Alt = true
	return &keys[0], 1 + size
}

func decodeCSI(b []byte) (*tea.KeyMsg, int) {
	// parameter and intermediate bytes, then one final byte in 0x40..0x7e
	end := 2
	for end < len(b) && (b[end] < 0x40 || b[end] > 0x7e) {
		end++
	}
	if end >= len(b) {
		return nil, 0
	}

	params := string(b[2:end])
	final := b[end]
	n := end + 1

	if final == '~' {
		if t, ok := tildeKeys[params]; ok {
			return &tea.KeyMsg{Type: t}, n
		}
		return nil, n
	}
	if params == "" {
		if t, ok := csiKeys[final]; ok {
			return &tea.KeyMsg{Type: t}, n
		}
	}
	return nil, n
}
