// Command coreglob finds glob pattern matches in text.
//
// Usage:
//
//	coreglob match PATTERN [FILE...]      first match per line
//	coreglob match --rules rules.toml [FILE...]
//	coreglob check PATTERN...             report invalid patterns
//	coreglob gen PATTERN --name N         generate a specialized Go matcher
//
// Exit status is 0 when something matched, 2 when nothing did and 1 on error.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
