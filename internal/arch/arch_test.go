// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

const mod = "mmcount/"

type pkg struct {
	ImportPath string
	Imports    []string
}

// outer layers that the scanning and formatting packages must not reach
var front = []string{
	mod + "internal/cli", mod + "internal/appcore", mod + "internal/app",
	mod + "cmd/",
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		mod + "internal/seq":      append([]string{mod + "internal/"}, front...),
		mod + "internal/library":  append([]string{mod + "internal/engine", mod + "internal/pipeline", mod + "internal/writers"}, front...),
		mod + "internal/query":    append([]string{mod + "internal/engine", mod + "internal/pipeline", mod + "internal/writers"}, front...),
		mod + "internal/engine":   append([]string{mod + "internal/pipeline", mod + "internal/writers", mod + "internal/output"}, front...),
		mod + "internal/pipeline": append([]string{mod + "internal/writers", mod + "internal/output"}, front...),
		mod + "internal/output":   append([]string{mod + "internal/pipeline", mod + "internal/writers"}, front...),
		mod + "internal/writers":  append([]string{mod + "internal/pipeline"}, front...),
		mod + "internal/mutants":  append([]string{mod + "internal/engine", mod + "internal/pipeline", mod + "internal/writers"}, front...),
		mod + "pkg/api":           {mod + "internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
