package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"pixelspriter/internal/platform"
)

// ANSI Color Codes
const (
	Reset   = "\033[0m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
	Yellow  = "\033[33m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Bold    = "\033[1m"
)

const logo = `
  ▪ ▫ ▪ ▫  pixelspriter
  ▪ ▫ ▪    turtles all the way down
  ▪ ▫
  ▪
`

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	colors           = platform.IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
)

// SetOutput redirects console output. Colors are only emitted when color is true.
func SetOutput(w io.Writer, color bool) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	colors = color
}

func paint(code, s string) string {
	if !colors {
		return s
	}
	return code + s + Reset
}

func line(code, tag, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s\n", paint(code, tag), msg)
}

func PrintLogo() {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, paint(Magenta, logo))
}

func Info(msg string) {
	line(Cyan, "[INFO]", msg)
}

func Success(msg string) {
	line(Green, "[SUCCESS]", msg)
}

func Warning(msg string) {
	line(Yellow, "[WARNING]", msg)
}

func Error(msg string) {
	line(Red, "[ERROR]", msg)
}

func Header(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n%s\n", paint(Magenta, "=== "+title+" ==="))
}
