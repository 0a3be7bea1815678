package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing AT command responses. It uses the
// signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// Samsung devices terminate lines with either LF or CRLF depending on the
// firmware, so it splits on LF and drops a trailing CR from the token.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte("\r")), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte("\r")), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Classify identifies the nature of a response line
func Classify(line string) ResponseType {
	switch line {
	case OK, ERROR:
		return TypeFinal
	}

	switch {
	case strings.HasPrefix(line, CmeError), strings.HasPrefix(line, CmsError):
		return TypeFinal
	case strings.HasPrefix(strings.ToUpper(line), prefix):
		return TypeEcho
	default:
		return TypeData
	}
}

// Lines returns the non-blank lines of resp with surrounding whitespace
// removed.
func Lines(resp string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(resp))
	scanner.Split(Splitter)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FinalResult reports the last final result code found in resp.
func FinalResult(resp string) (string, bool) {
	lines := Lines(resp)
	for i := len(lines) - 1; i >= 0; i-- {
		if Classify(lines[i]) == TypeFinal {
			return lines[i], true
		}
	}
	return "", false
}
