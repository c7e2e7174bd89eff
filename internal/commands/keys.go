package commands

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultKeys maps key identifiers used in commands.json to readable key names
var DefaultKeys = map[string]string{
	"ALT_DELETE":     "Alt+Delete",
	"ALT_DOWN":       "Alt+Down Arrow",
	"ALT_UP":         "Alt+Up Arrow",
	"B":              "B",
	"SHIFT_B":        "Shift+B",
	"C":              "C",
	"SHIFT_C":        "Shift+C",
	"CAPS_TAB":       "Caps Lock+Tab",
	"CAPS_UP":        "Caps Lock+Up Arrow",
	"CTRL_HOME":      "Control+Home",
	"CTRL_END":       "Control+End",
	"CTRL_OPT_LEFT":  "Control+Option+Left Arrow",
	"CTRL_OPT_RIGHT": "Control+Option+Right Arrow",
	"CTRL_OPT_SPACE": "Control+Option+Space",
	"CTRL_OPT_F3":    "Control+Option+F3",
	"CTRL_OPT_F4":    "Control+Option+F4",
	"DOWN":           "Down Arrow",
	"E":              "E",
	"SHIFT_E":        "Shift+E",
	"END":            "End",
	"ENTER":          "Enter",
	"ESC":            "Escape",
	"F":              "F",
	"SHIFT_F":        "Shift+F",
	"HOME":           "Home",
	"INS_DOWN":       "Insert+Down Arrow",
	"INS_SPACE":      "Insert+Space",
	"INS_TAB":        "Insert+Tab",
	"INS_UP":         "Insert+Up Arrow",
	"INS_Z":          "Insert+Z",
	"LEFT":           "Left Arrow",
	"LEFT_RIGHT":     "Left Arrow and Right Arrow",
	"PAGE_DOWN":      "Page Down",
	"PAGE_UP":        "Page Up",
	"RIGHT":          "Right Arrow",
	"SHIFT_TAB":      "Shift+Tab",
	"SPACE":          "Space",
	"TAB":            "Tab",
	"UP":             "Up Arrow",
	"X":              "X",
	"SHIFT_X":        "Shift+X",
	"VO_DOWN":        "VO+Down Arrow",
	"VO_LEFT":        "VO+Left Arrow",
	"VO_RIGHT":       "VO+Right Arrow",
	"VO_SPACE":       "VO+Space",
	"VO_UP":          "VO+Up Arrow",
	"VO_SHIFT_DOWN":  "VO+Shift+Down Arrow",
	"VO_SHIFT_UP":    "VO+Shift+Up Arrow",
	"VO_CMD_J":       "VO+Command+J",
	"VO_CMD_SHIFT_J": "VO+Command+Shift+J",
	"VO_CMD_X":       "VO+Command+X",
	"VO_CMD_SHIFT_X": "VO+Command+Shift+X",
	"VO_A":           "VO+A",
	"VO_F3":          "VO+F3",
	"VO_F4":          "VO+F4",
	"VO_SHIFT_HOME":  "VO+Shift+Home",
	"VO_SHIFT_END":   "VO+Shift+End",
}

// LoadKeys returns DefaultKeys extended with the entries of a JSON object file
// (identifier -> name). A missing file yields the defaults unchanged.
func LoadKeys(path string) (map[string]string, error) {
	keys := make(map[string]string, len(DefaultKeys))
	for id, name := range DefaultKeys {
		keys[id] = name
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return keys, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key table: %w", err)
	}

	var extra map[string]string
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse key table %s: %w", path, err)
	}
	for id, name := range extra {
		keys[id] = name
	}
	return keys, nil
}

// DefaultModeInstructions holds the per-mode, per-AT preparation steps shown
// to testers before they run a command sequence
var DefaultModeInstructions = map[string]map[string]string{
	"reading": {
		"jaws":            "Verify the Virtual Cursor is active by pressing Alt+Delete. If it is not, turn on the Virtual Cursor by pressing Insert+Z.",
		"nvda":            "Insure NVDA is in browse mode by pressing Escape. Note: This command has no effect if NVDA is already in browse mode.",
		"voiceover_macos": "Toggle Quick Nav ON by pressing the Left Arrow and Right Arrow keys at the same time.",
	},
	"interaction": {
		"jaws":            "Verify the PC Cursor is active by pressing Alt+Delete. If it is not, turn off the Virtual Cursor by pressing Insert+Z.",
		"nvda":            "If NVDA did not make the focus mode sound when the test page loaded, press Insert+Space to turn focus mode on.",
		"voiceover_macos": "Toggle Quick Nav OFF by pressing the Left Arrow and Right Arrow keys at the same time.",
	},
}
