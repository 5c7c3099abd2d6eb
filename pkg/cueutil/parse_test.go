// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Thing: {
	name:    string & !=""
	count?:  int & >=0
	nested?: {
		label?: string
	}
}
`

type thing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseAndDecode(t *testing.T) {
	result, err := ParseAndDecodeString[thing](
		testSchema,
		[]byte(`name: "widget"`+"\n"+`count: 3`),
		"#Thing",
		WithFilename("thing.cue"),
	)
	if err != nil {
		t.Fatalf("ParseAndDecode failed: %v", err)
	}
	if result.Value.Name != "widget" || result.Value.Count != 3 {
		t.Errorf("decoded %+v, want name=widget count=3", result.Value)
	}
}

func TestParseAndDecodeSchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty name", `name: ""`},
		{"wrong type", `name: "x"` + "\n" + `count: "three"`},
		{"negative count", `name: "x"` + "\n" + `count: -1`},
		{"cue syntax error", `name: "x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndDecodeString[thing](testSchema, []byte(tt.data), "#Thing",
				WithFilename("thing.cue"), WithConcrete(false))
			if err == nil {
				t.Fatal("ParseAndDecode succeeded, want error")
			}
			if !strings.Contains(err.Error(), "thing.cue") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	_, err := ParseAndDecodeString[thing](testSchema, []byte(`name: "x"`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "#Missing") {
		t.Errorf("error = %v, want mention of missing schema definition", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("CheckFileSize rejected data at the limit: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f.cue"); err == nil {
		t.Error("CheckFileSize accepted data over the limit")
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"tools"}, "tools"},
		{[]string{"tools", "0", "name"}, "tools[0].name"},
		{[]string{"devshell", "rules", "1"}, "devshell.rules[1]"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
