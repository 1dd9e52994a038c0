package rt

import (
	"io"
	"strconv"
)

// The print shims format one primitive per call and write it plus a
// newline to the host stdout. Write failures are not checked: the shims
// model fire-and-forget output and have no failure path.

func printLine(b []byte) {
	w := host.Stdout()
	b = append(b, '\n')
	_, _ = w.Write(b)
}

// PrintString writes the raw bytes of s and a newline.
func PrintString(s Str) {
	w := host.Stdout()
	_, _ = w.Write(s.bytes[:s.n])
	_, _ = io.WriteString(w, "\n")
}

// PrintBool writes "true" or "false".
func PrintBool(v bool) {
	if v {
		printLine([]byte("true"))
		return
	}
	printLine([]byte("false"))
}

// PrintInt32 writes the decimal form of v.
func PrintInt32(v int32) {
	printLine(strconv.AppendInt(nil, int64(v), 10))
}

// PrintInt64 writes the decimal form of v.
func PrintInt64(v int64) {
	printLine(strconv.AppendInt(nil, v, 10))
}

// PrintFloat32 writes the shortest representation that round-trips v.
func PrintFloat32(v float32) {
	printLine(strconv.AppendFloat(nil, float64(v), 'g', -1, 32))
}

// PrintFloat64 writes the shortest representation that round-trips v.
func PrintFloat64(v float64) {
	printLine(strconv.AppendFloat(nil, v, 'g', -1, 64))
}
