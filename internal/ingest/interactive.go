package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt is written before every interactive line
const Prompt = "> "

// ReadInteractive accumulates lines from r until an empty line follows some
// content. Whitespace-only lines before any content are skipped; later ones
// are kept. Line breaks are preserved.
// A prompt is written to w before each line when w is non-nil.
func ReadInteractive(r io.Reader, w io.Writer) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for {
		if w != nil {
			if _, err := fmt.Fprint(w, Prompt); err != nil {
				return "", fmt.Errorf("write prompt: %w", err)
			}
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if len(lines) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
		} else if line == "" {
			break
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.Join(lines, "\n"), nil
}
