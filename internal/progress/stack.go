package progress

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one rewritten stack frame: just enough to print a useful
// location without leaking the full runtime/library call chain.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// CaptureUserStack walks the current goroutine's call stack and keeps only
// the frames whose file path is under sourceRoot, trimming everything
// above the first frame inside user code (spec §4.6 step 4: "rewrite the
// stack to the first frame inside the user source directory").
func CaptureUserStack(sourceRoot string, skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frameIter := runtime.CallersFrames(pcs[:n])
	var out []Frame
	for {
		frame, more := frameIter.Next()
		if strings.HasPrefix(frame.File, sourceRoot) {
			out = append(out, Frame{Function: frame.Function, File: frame.File, Line: frame.Line})
		}
		if !more {
			break
		}
	}
	return out
}

// FormatStack renders frames the way the user-visible failure block
// prints them (spec §7: "prints the reduced stack trace").
func FormatStack(frames []Frame) string {
	lines := make([]string, len(frames))
	for i, f := range frames {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
