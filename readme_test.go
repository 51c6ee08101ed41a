package main

import (
	"os"
	"strings"
	"testing"

	"github.com/R167/lannet/internal/mode"
)

func TestREADMEIncludesAllModes(t *testing.T) {
	readmeBytes, err := os.ReadFile("README.md")
	if err != nil {
		t.Fatalf("Failed to read README.md: %v", err)
	}
	readmeContent := string(readmeBytes)

	var missingModes []string
	for _, m := range mode.All() {
		if !strings.Contains(readmeContent, "`--"+m.Name+"`") {
			missingModes = append(missingModes, m.Name)
		}
	}

	if len(missingModes) > 0 {
		t.Errorf("The following modes are missing from README.md: %v", missingModes)
	}
}

func TestREADMEModesHaveTableRows(t *testing.T) {
	readmeBytes, err := os.ReadFile("README.md")
	if err != nil {
		t.Fatalf("Failed to read README.md: %v", err)
	}

	rows := make(map[string]string)
	for _, line := range strings.Split(string(readmeBytes), "\n") {
		if !strings.HasPrefix(line, "| `--") {
			continue
		}
		flag := strings.TrimPrefix(line, "| `--")
		flag = flag[:strings.Index(flag, "`")]
		rows[flag] = line
	}

	var missingDescriptions []string
	for _, m := range mode.All() {
		row, ok := rows[m.Name]
		if !ok {
			missingDescriptions = append(missingDescriptions, m.Name)
			continue
		}
		if m.Shorthand != "" && !strings.Contains(row, "`-"+m.Shorthand+"`") {
			t.Errorf("README.md row for --%s does not list -%s", m.Name, m.Shorthand)
		}
	}

	if len(missingDescriptions) > 0 {
		t.Errorf("The following modes lack a row in the README.md modes table: %v", missingDescriptions)
	}
}

func TestREADMEListsMCPTools(t *testing.T) {
	readmeBytes, err := os.ReadFile("README.md")
	if err != nil {
		t.Fatalf("Failed to read README.md: %v", err)
	}

	for _, name := range newToolRegistry(nil).Names() {
		if !strings.Contains(string(readmeBytes), "`"+name+"`") {
			t.Errorf("MCP tool %s is missing from README.md", name)
		}
	}
}
