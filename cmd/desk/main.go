package main

import (
	"os"
	"strings"

	"desk-cli/internal/cli"
)

func isScriptPath(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".desk") && len(s) > len(".desk")
}

func rewriteScriptShortcutArgs(argv []string) []string {
	// Convenience: `desk moves.desk` works like `desk script moves.desk`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
	// parsing. Persistent flags may come first (`desk --seed s.yaml moves.desk`), so look
	// for the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":    true,
		"--format":    true,
		"--log-level": true,
		"--seed":      true,
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "script")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isScriptPath(argv[i+1]) {
				return insert(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isScriptPath(a) {
			return insert(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteScriptShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cli.Execute(cmd); err != nil {
		os.Exit(1)
	}
}
