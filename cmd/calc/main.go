package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, angle string
		with                [][2]string
		sw                  *sweep
		nl, echo, repl      bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`constant definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	setsweep := func(s string) error {
		var err error
		sw, err = parseSweep(s)
		return err
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting string (default calculator display)")
	flag.StringVar(&angle, "angle", "deg", "unit of trigonometric arguments, deg or rad")
	flag.Func("given", "name=value constant definition (any number of times)", addwith)
	flag.Func("sweep", "name=from:to:step evaluates each expression over a range of name", setsweep)
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parsed expressions in reverse Polish notation")
	flag.BoolVar(&repl, "i", false, "interactive mode")
	flag.Parse()

	var mode calc.AngleMode
	switch strings.ToLower(angle) {
	case "deg":
		mode = calc.Degrees
	case "rad":
		mode = calc.Radians
	default:
		log.Fatalf("angle unit must be deg or rad, not %q", angle)
	}

	consts := make(map[string]float64, len(with))
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := calc.Evaluate(vl, calc.Angle(mode), calc.SetConsts(consts))
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		consts[nm] = r
	}
	s := session{out: os.Stdout, mode: mode, consts: consts, verb: verb, echo: echo}

	if repl {
		if err := s.interact(); err != nil {
			log.Fatal(err)
		}
		return
	}

	var srcs []string
	in, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if in != nil {
		defer in.Close()
		v, err := readExprs(in, nl)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, v...)
	}
	srcs = append(srcs, flag.Args()...)

	for _, src := range srcs {
		if sw != nil {
			s.sweep(src, sw)
			continue
		}
		s.eval(src)
	}
}

// session carries settings and the previous answer between expressions.
type session struct {
	out    io.Writer
	mode   calc.AngleMode
	consts map[string]float64
	ans    float64
	verb   string
	echo   bool
}

func (s *session) opts(extra ...calc.Option) []calc.Option {
	opts := []calc.Option{calc.Angle(s.mode), calc.SetConsts(s.consts), calc.Ans(s.ans)}
	return append(opts, extra...)
}

func (s *session) format(r float64) string {
	if s.verb == "" {
		return calc.FormatDisplay(r)
	}
	return fmt.Sprintf(s.verb, r)
}

// eval evaluates one expression, prints its result or error, and records the
// result as Ans.
func (s *session) eval(src string) {
	a, err := calc.Parse(src, s.opts()...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", a)
	}
	r, err := a.Eval(s.opts()...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.ans = r
	fmt.Fprintln(s.out, s.format(r))
}

// sweep evaluates one expression at each sample of a range. An expression
// that never mentions the swept name still runs, after a warning.
func (s *session) sweep(src string, sw *sweep) {
	a, err := calc.Parse(src, s.opts(calc.SetConst(sw.name, 0))...)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if !uses(a, sw.name) {
		fmt.Fprintf(s.out, "warning: %s does not use %s\n", src, sw.name)
	}
	if s.echo {
		fmt.Fprintln(s.out, a)
	}
	for i := 0; i < sw.n; i++ {
		x := sw.from + float64(i)*sw.step
		r, err := a.Eval(s.opts(calc.SetConst(sw.name, x))...)
		if err != nil {
			fmt.Fprintf(s.out, "%s\t%v\n", calc.FormatDisplay(x), err)
			continue
		}
		fmt.Fprintf(s.out, "%s\t%s\n", calc.FormatDisplay(x), s.format(r))
	}
}

func uses(a *calc.Expr, name string) bool {
	for _, nm := range a.Names() {
		if nm == name {
			return true
		}
	}
	return false
}

// interact reads expressions from the terminal until interrupted. The prompt
// evaluates the line on every keystroke, so errors show before submission.
func (s *session) interact() error {
	for {
		prompt := promptui.Prompt{
			Label: "Ans = " + calc.FormatDisplay(s.ans),
			Validate: func(line string) error {
				if strings.TrimSpace(line) == "" {
					return nil
				}
				_, err := calc.Evaluate(line, s.opts()...)
				return err
			},
		}
		line, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.eval(line)
	}
}

// sweep is a range of values for one constant.
type sweep struct {
	name       string
	from, step float64
	n          int
}

// maxSamples bounds the number of points in a sweep.
const maxSamples = 1 << 20

func parseSweep(s string) (*sweep, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return nil, fmt.Errorf(`sweep must be "name=from:to:step", not %q`, s)
	}
	r := strings.Split(d[1], ":")
	if len(r) != 3 {
		return nil, fmt.Errorf(`sweep range must be "from:to:step", not %q`, d[1])
	}
	var v [3]float64
	for i, t := range r {
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, fmt.Errorf("sweep range %q: %w", d[1], err)
		}
		v[i] = x
	}
	from, to, step := v[0], v[1], v[2]
	if step <= 0 || to < from {
		return nil, fmt.Errorf("sweep range %q must have from <= to and positive step", d[1])
	}
	n := int((to-from)/step+1e-9) + 1
	if n > maxSamples {
		return nil, fmt.Errorf("sweep range %q has more than %d samples", d[1], maxSamples)
	}
	return &sweep{name: strings.TrimSpace(d[0]), from: from, step: step, n: n}, nil
}

// readExprs reads either one expression per line or the whole input as one.
func readExprs(in io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var v []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		v = append(v, sc.Text())
	}
	return v, sc.Err()
}

// infile opens the expression input. The result is nil if there is none.
// Closing stdin is a no-op.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
