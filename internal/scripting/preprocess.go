// Package scripting is the optional `.basm` macro preprocessor: a single
// pragma, `#lua "file"`, that runs a Lua script (via gopher-lua) before
// assembly and splices whatever text it emits into the source in the
// pragma's place. It exists to let a program generate repetitive `.data`
// tables or `const` blocks without a bespoke macro language of its own.
package scripting

import (
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const pragmaPrefix = "#lua "

// Preprocess scans src line by line for `#lua "file"` pragmas and replaces
// each one with the text its script emits via the Lua-side `emit(line)`
// builtin. baseDir resolves relative script paths (the directory the
// source file itself was loaded from). Lines with no pragma pass through
// unchanged, so calling Preprocess on a program with no `#lua` lines at
// all is a no-op copy.
func Preprocess(src string, baseDir string) (string, error) {
	lines := strings.Split(src, "\n")
	var out []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, pragmaPrefix) {
			out = append(out, line)
			continue
		}
		path, err := pragmaPath(trimmed)
		if err != nil {
			return "", fmt.Errorf("scripting: line %d: %w", i+1, err)
		}
		if !strings.HasPrefix(path, "/") {
			path = baseDir + "/" + path
		}
		emitted, err := runScript(path)
		if err != nil {
			return "", fmt.Errorf("scripting: line %d: %w", i+1, err)
		}
		out = append(out, emitted...)
	}
	return strings.Join(out, "\n"), nil
}

// pragmaPath extracts the quoted filename out of `#lua "file"`.
func pragmaPath(line string) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, pragmaPrefix))
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", fmt.Errorf("malformed #lua pragma, expected #lua \"file\"")
	}
	return rest[1 : len(rest)-1], nil
}

// runScript executes a Lua file in a fresh state, collecting every line
// passed to its `emit` builtin in call order.
func runScript(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	L := lua.NewState()
	defer L.Close()

	var emitted []string
	L.SetGlobal("emit", L.NewFunction(func(L *lua.LState) int {
		emitted = append(emitted, L.ToString(1))
		return 0
	}))

	if err := L.DoString(string(src)); err != nil {
		return nil, fmt.Errorf("running %s: %w", path, err)
	}
	return emitted, nil
}
