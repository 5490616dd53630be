package keymap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/francisrstokes/split2040-fw/keycode"
)

// Parse turns a keymap-profile expression into an Entry. The vocabulary
// follows the C keymap macros:
//
//	KC_A  ____  TRANS  NONE
//	LC(KC_LEFT)  LS(KC_9)  LA(...)  LG(...)
//	MO(1)
//	LC_T(KC_F)  LS_T(LS(KC_3))  LA_T(...)  LG_T(...)
//	TAP_HOLD(KC_ESC, KC_GRAVE)
//	DT(KC_SPC, KC_ENTER)
//	MACRO(0)  BOOT
//	MS_LEFT_CLICK  MS_MOVE_UP  ...
//	CC_VOL_UP  CC_PLAY  ...
func Parse(s string) (Entry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, fmt.Errorf("keymap: empty entry expression")
	}

	name, args, err := splitCall(s)
	if err != nil {
		return None, err
	}

	if len(args) == 0 {
		return parseAtom(name)
	}

	switch name {
	case "LC", "LS", "LA", "LG":
		inner, err := parseOne(name, args)
		if err != nil {
			return None, err
		}
		return wrapMod(name, inner), nil

	case "MO":
		layer, err := parseInt(name, args)
		if err != nil {
			return None, err
		}
		return MO(uint8(layer)), nil

	case "LC_T", "LS_T", "LA_T", "LG_T":
		inner, err := parseOne(name, args)
		if err != nil {
			return None, err
		}
		switch name {
		case "LC_T":
			return CtlT(inner), nil
		case "LS_T":
			return SftT(inner), nil
		case "LA_T":
			return AltT(inner), nil
		default:
			return GuiT(inner), nil
		}

	case "TAP_HOLD", "TH":
		tap, hold, err := parseTwo(name, args)
		if err != nil {
			return None, err
		}
		return TapHold(tap, hold.Keycode(), hold.Mods()), nil

	case "DT", "DOUBLE_TAP":
		tap, double, err := parseTwo(name, args)
		if err != nil {
			return None, err
		}
		return DoubleTap(tap, double.Keycode(), double.Mods()), nil

	case "MACRO":
		index, err := parseInt(name, args)
		if err != nil {
			return None, err
		}
		return Macro(uint8(index)), nil

	default:
		return None, fmt.Errorf("keymap: unknown entry %q", name)
	}
}

// MustParse is Parse for static tables; it panics on malformed input.
func MustParse(s string) Entry {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

var mouseActions = map[string]uint8{
	"MS_LEFT_CLICK":   MouseLeftClick,
	"MS_MIDDLE_CLICK": MouseMiddleClick,
	"MS_RIGHT_CLICK":  MouseRightClick,
	"MS_MOVE_LEFT":    MouseMoveLeft,
	"MS_MOVE_RIGHT":   MouseMoveRight,
	"MS_MOVE_UP":      MouseMoveUp,
	"MS_MOVE_DOWN":    MouseMoveDown,
}

var consumerUsages = func() map[string]uint16 {
	m := make(map[string]uint16, len(keycode.ConsumerName))
	for usage, name := range keycode.ConsumerName {
		m["CC_"+name] = usage
	}
	return m
}()

func parseAtom(name string) (Entry, error) {
	switch name {
	case "____", "TRANS", "KC_TRANS":
		return Transparent, nil
	case "NONE", "KC_NONE":
		return None, nil
	case "BOOT":
		return Bootloader(), nil
	}
	if action, ok := mouseActions[name]; ok {
		return Mouse(action), nil
	}
	if usage, ok := consumerUsages[name]; ok {
		return Consumer(usage), nil
	}
	if kc, ok := keycode.Usage[strings.TrimPrefix(name, "KC_")]; ok {
		return Key(kc), nil
	}
	return None, fmt.Errorf("keymap: unknown key %q", name)
}

func wrapMod(name string, e Entry) Entry {
	switch name {
	case "LC":
		return Ctl(e)
	case "LS":
		return Sft(e)
	case "LA":
		return Alt(e)
	default:
		return Gui(e)
	}
}

// splitCall splits "NAME(a, b(c), d)" into NAME and top-level args. A bare
// name yields no args.
func splitCall(s string) (string, []string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("keymap: unbalanced parens in %q", s)
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]

	var args []string
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", nil, fmt.Errorf("keymap: unbalanced parens in %q", s)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(body[last:i]))
				last = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, fmt.Errorf("keymap: unbalanced parens in %q", s)
	}
	if rest := strings.TrimSpace(body[last:]); rest != "" {
		args = append(args, rest)
	}
	return name, args, nil
}

func parseOne(name string, args []string) (Entry, error) {
	if len(args) != 1 {
		return None, fmt.Errorf("keymap: %s takes one argument, got %d", name, len(args))
	}
	return Parse(args[0])
}

func parseTwo(name string, args []string) (Entry, Entry, error) {
	if len(args) != 2 {
		return None, None, fmt.Errorf("keymap: %s takes two arguments, got %d", name, len(args))
	}
	a, err := Parse(args[0])
	if err != nil {
		return None, None, err
	}
	b, err := Parse(args[1])
	if err != nil {
		return None, None, err
	}
	return a, b, nil
}

func parseInt(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("keymap: %s takes one argument, got %d", name, len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > 0xff {
		return 0, fmt.Errorf("keymap: bad %s argument %q", name, args[0])
	}
	return n, nil
}
