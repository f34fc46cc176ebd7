package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
)

type evalOptions struct {
	inname    string
	verb      string
	echo      bool
	keepGoing bool
}

func newEvalCmd() *cobra.Command {
	var o evalOptions
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions given as arguments or one per input line",
		Long: `Evaluate each argument as an expression. With no arguments, or with --in,
each line of the input is evaluated as a separate expression.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.inname, "in", "", "input file (default stdin if no args given)")
	f.StringVar(&o.verb, "fmt", "%g", "result formatting string")
	f.BoolVar(&o.echo, "echo", false, "print each expression with products folded")
	f.BoolVarP(&o.keepGoing, "keep-going", "k", false, "print errors and continue instead of stopping")
	return cmd
}

func (o *evalOptions) run(cmd *cobra.Command, args []string) error {
	var srcs []string
	in, closer, err := infile(cmd.InOrStdin(), o.inname, len(args) == 0)
	if err != nil {
		return fail(cmd, err)
	}
	if closer != nil {
		defer closer.Close()
	}
	if in != nil {
		lines, err := readLines(in)
		if err != nil {
			return fail(cmd, err)
		}
		srcs = append(srcs, lines...)
	}
	srcs = append(srcs, args...)

	out := cmd.OutOrStdout()
	verb := o.verb + "\n"
	var failed error
	for _, src := range srcs {
		if o.echo {
			seq, err := calculator.Fold(src)
			if err == nil {
				fmt.Fprintf(out, "%s : ", fold(seq))
			}
		}
		r, err := calculator.Eval(src)
		if err != nil {
			err = errors.Wrapf(err, "evaluating %q", src)
			if !o.keepGoing {
				return fail(cmd, err)
			}
			fmt.Fprintln(out, err)
			failed = err
			continue
		}
		fmt.Fprintf(out, verb, r)
	}
	return failed
}

// fold formats an additive sequence.
func fold(seq []calculator.Token) string {
	s := make([]string, len(seq))
	for i, tok := range seq {
		s[i] = tok.String()
	}
	return strings.Join(s, " ")
}

// readLines reads non-blank lines.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return lines, nil
}

func infile(stdin io.Reader, inname string, std bool) (io.Reader, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening input")
		}
		return f, f, nil
	case inname == "-", std:
		return stdin, nil, nil
	}
	return nil, nil, nil
}
