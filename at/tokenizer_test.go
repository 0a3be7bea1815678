package at_test

import (
	"bufio"
	"slices"
	"strings"
	"testing"

	"i4.energy/across/cscctl/at"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "CRLF terminated response",
			input:    "AT+SWATD=0\r\nOK\r\n",
			expected: []string{"AT+SWATD=0", "OK"},
		},
		{
			name:     "LF terminated response",
			input:    "AT+PRECONFG=1,0\n+PRECONFG: XEO\nOK\n",
			expected: []string{"AT+PRECONFG=1,0", "+PRECONFG: XEO", "OK"},
		},
		{
			name:     "Mixed terminators",
			input:    "+PRECONFG: XEO\r\nOK\n",
			expected: []string{"+PRECONFG: XEO", "OK"},
		},
		{
			name:     "Unterminated tail",
			input:    "OK\r\nERR",
			expected: []string{"OK", "ERR"},
		},
		{
			name:     "Empty lines handling",
			input:    "\r\n\r\nOK\r\n",
			expected: []string{"", "", "OK"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if !slices.Equal(tokens, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, tokens)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected at.ResponseType
	}{
		{name: "OK response", input: "OK", expected: at.TypeFinal},
		{name: "ERROR response", input: "ERROR", expected: at.TypeFinal},
		{name: "CME Error", input: "+CME ERROR: 30", expected: at.TypeFinal},
		{name: "CMS Error", input: "+CMS ERROR: 500", expected: at.TypeFinal},

		{name: "Echoed command", input: "AT+PRECONFG=2,XEO", expected: at.TypeEcho},
		{name: "Lower case echo", input: "at+swatd=1", expected: at.TypeEcho},

		{name: "Sales code query result", input: "+PRECONFG: XEO", expected: at.TypeData},
		{name: "Free text", input: "DDEXE", expected: at.TypeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := at.Classify(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v for input %q", tt.expected, result, tt.input)
			}
		})
	}
}

func TestFinalResult(t *testing.T) {
	t.Run("Last final code wins", func(t *testing.T) {
		got, ok := at.FinalResult("AT+ACTIVATE=0,0,0\r\nERROR\r\nOK\r\n")
		if !ok || got != at.OK {
			t.Errorf("expected %q, got %q (ok=%v)", at.OK, got, ok)
		}
	})

	t.Run("No final code", func(t *testing.T) {
		if got, ok := at.FinalResult("+PRECONFG: XEO\n"); ok {
			t.Errorf("expected no final result, got %q", got)
		}
	})

	t.Run("Empty response", func(t *testing.T) {
		if _, ok := at.FinalResult(""); ok {
			t.Error("expected no final result for empty response")
		}
	})
}

func TestSetSalesCode(t *testing.T) {
	if got := at.SetSalesCode("XEO"); got != "AT+PRECONFG=2,XEO" {
		t.Errorf("unexpected command: %q", got)
	}
}
