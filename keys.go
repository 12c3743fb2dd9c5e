package cmenu

// Key sequences as received from a terminal in raw mode.
const (
	KeyCtrlB  = "\x02"
	KeyCtrlD  = "\x04"
	KeyCtrlF  = "\x06"
	KeyCtrlG  = "\x07"
	KeyCtrlJ  = "\x0a" // newline
	KeyCtrlL  = "\x0c"
	KeyEnter  = "\x0d" // CR
	KeyCtrlN  = "\x0e"
	KeyCtrlP  = "\x10"
	KeyCtrlU  = "\x15"
	KeyEscape = "\x1b"

	KeyUp      = "\x1b[A"
	KeyDown    = "\x1b[B"
	KeyUpSS3   = "\x1bOA"
	KeyDownSS3 = "\x1bOB"

	KeyHome    = "\x1b[H"
	KeyEnd     = "\x1b[F"
	KeyHome2   = "\x1b[1~"
	KeyEnd2    = "\x1b[4~"
	KeyHomeSS3 = "\x1bOH"
	KeyEndSS3  = "\x1bOF"
	KeyHome7   = "\x1b[7~"
	KeyEnd8    = "\x1b[8~"

	KeyPageUp   = "\x1b[5~"
	KeyPageDown = "\x1b[6~"

	KeyEnterSS3 = "\x1bOM" // keypad enter
)

// Action is what a key asks the event loop to do.
type Action int

const (
	ActNone Action = iota
	ActUp
	ActDown
	ActPageUp
	ActPageDown
	ActHalfPageUp
	ActHalfPageDown
	ActFirst
	ActLast
	ActShowInfo
	ActHideInfo
	ActRefresh
	ActCommit
	ActCustom
	ActQuit
)

var actionNames = [...]string{
	ActNone:         "none",
	ActUp:           "up",
	ActDown:         "down",
	ActPageUp:       "page-up",
	ActPageDown:     "page-down",
	ActHalfPageUp:   "half-page-up",
	ActHalfPageDown: "half-page-down",
	ActFirst:        "first",
	ActLast:         "last",
	ActShowInfo:     "show-info",
	ActHideInfo:     "hide-info",
	ActRefresh:      "refresh",
	ActCommit:       "commit",
	ActCustom:       "custom",
	ActQuit:         "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Keymap binds key sequences to actions.
type Keymap map[string]Action

// DefaultKeymap returns the standard bindings: arrows and vi keys to move,
// emacs-style control keys for paging, Enter to commit.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyUp:      ActUp,
		KeyUpSS3:   ActUp,
		"k":        ActUp,
		KeyCtrlP:   ActUp,
		KeyDown:    ActDown,
		KeyDownSS3: ActDown,
		"j":        ActDown,
		KeyCtrlN:   ActDown,

		KeyHome:    ActFirst,
		KeyHome2:   ActFirst,
		KeyHome7:   ActFirst,
		KeyHomeSS3: ActFirst,
		"g":        ActFirst,
		KeyEnd:     ActLast,
		KeyEnd2:    ActLast,
		KeyEnd8:    ActLast,
		KeyEndSS3:  ActLast,
		"G":        ActLast,

		KeyCtrlG:  ActShowInfo,
		KeyEscape: ActHideInfo,

		KeyPageDown: ActPageDown,
		KeyCtrlF:    ActPageDown,
		KeyPageUp:   ActPageUp,
		KeyCtrlB:    ActPageUp,
		KeyCtrlD:    ActHalfPageDown,
		KeyCtrlU:    ActHalfPageUp,

		KeyCtrlL: ActRefresh,

		KeyEnter:    ActCommit,
		KeyCtrlJ:    ActCommit,
		KeyEnterSS3: ActCommit,

		"c": ActCustom,
		"q": ActQuit,
	}
}

// Lookup returns the action bound to key, or ActNone.
func (k Keymap) Lookup(key string) Action {
	return k[key]
}

// splitKey returns the length of the first key sequence in data. Escape
// sequences (CSI and SS3) are kept whole; anything else is one UTF-8 rune.
// complete is false when data ends partway through an escape sequence.
func splitKey(data []byte) (n int, complete bool) {
	if len(data) == 0 {
		return 0, false
	}
	if data[0] != '\x1b' {
		return runeLen(data), true
	}
	if len(data) == 1 {
		// a lone ESC, or the start of a sequence still in flight
		return 1, false
	}
	switch data[1] {
	case '[':
		// CSI: parameters and intermediates up to a final byte in 0x40-0x7e
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return j + 1, true
			}
		}
		return len(data), false
	case 'O':
		if len(data) < 3 {
			return len(data), false
		}
		return 3, true
	case '\x1b':
		return 1, true
	}
	// alt-modified key: ESC followed by the key itself
	return 1 + runeLen(data[1:]), true
}

func runeLen(data []byte) int {
	b := data[0]
	var n int
	switch {
	case b < 0x80:
		n = 1
	case b>>5 == 0x6:
		n = 2
	case b>>4 == 0xe:
		n = 3
	case b>>3 == 0x1e:
		n = 4
	default:
		n = 1
	}
	if n > len(data) {
		n = len(data)
	}
	return n
}
