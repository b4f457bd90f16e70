// Command vimgrep compiles a Vim pattern and either prints the translated
// host regex source (-n) or runs it line by line against stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coregx/vimregex"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vimgrep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dryRun := fs.Bool("n", false, "print the translated host regex source and exit")
	ignoreCase := fs.Bool("i", false, "ignore case")
	smartCase := fs.Bool("smartcase", false, "disable -i if the pattern has an upper-case letter")
	noMagic := fs.Bool("nomagic", false, "compile with 'nomagic' instead of 'magic'")
	stringMatch := fs.Bool("stringmatch", false, "treat the subject as a single line rather than a buffer")
	flags := fs.String("flags", "", "host flags: subset of \"dgiy\"")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <pattern> [file...]\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Translates a Vim pattern to host regex source and, unless -n is given,")
		fmt.Fprintln(stderr, "prints every line of the input (files, or stdin if none given) that matches.")
		fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) < 1 {
		fmt.Fprintln(stderr, "error: a pattern argument is required")
		fs.Usage()
		return 2
	}
	pattern := remaining[0]
	files := remaining[1:]

	opts := vimregex.DefaultOptions().
		WithMagic(!*noMagic).
		WithIgnoreCase(*ignoreCase).
		WithSmartCase(*smartCase).
		WithStringMatch(*stringMatch)
	opts.Flags = *flags

	pat, err := vimregex.Compile(pattern, opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *dryRun {
		fmt.Fprintln(stdout, pat.HostSource())
		return 0
	}

	if len(files) == 0 {
		return grep(pat, stdin, "", stdout, stderr)
	}
	status := 0
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			status = 1
			continue
		}
		label := ""
		if len(files) > 1 {
			label = path
		}
		if rc := grep(pat, f, label, stdout, stderr); rc != 0 {
			status = rc
		}
		f.Close()
	}
	return status
}

func grep(pat *vimregex.Pattern, r io.Reader, label string, stdout, stderr io.Writer) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if pat.MatchString(line) {
			if label != "" {
				fmt.Fprintf(stdout, "%s:%s\n", label, line)
			} else {
				fmt.Fprintln(stdout, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
