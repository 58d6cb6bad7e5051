package game

import "strings"

// ScriptLines splits script text into display lines. A trailing newline does
// not produce an empty last line.
func ScriptLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}

// AppendScriptLine adds line at the end of src, keeping a trailing newline.
func AppendScriptLine(src, line string) string {
	lines := append(ScriptLines(src), line)
	return strings.Join(lines, "\n") + "\n"
}

// DropLastScriptLine removes the last line of src.
func DropLastScriptLine(src string) string {
	lines := ScriptLines(src)
	if len(lines) <= 1 {
		return ""
	}
	return strings.Join(lines[:len(lines)-1], "\n") + "\n"
}
