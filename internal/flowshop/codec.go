package flowshop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Instance text format:
//
//	nJobs nStages
//	m_0 m_1 ... m_{nStages-1}
//	# Stage 1
//	p[0][0][0] ... p[0][0][m_0-1]
//	...one line per job, then the next stage block...
//
// Lines starting with '#' and blank lines are ignored.

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &lineReader{sc: sc}
}

func (lr *lineReader) next() ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (lr *lineReader) ints(want int, what string) ([]int, error) {
	fields, err := lr.next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected end of input, expected %s", ErrInvalidInstance, what)
	}
	if err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, fmt.Errorf("%w: line %d: %s must have %d values (got %d)", ErrInvalidInstance, lr.line, what, want, len(fields))
	}
	out := make([]int, want)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s value %q is not an integer", ErrInvalidInstance, lr.line, what, f)
		}
		out[i] = v
	}
	return out, nil
}

// ReadInstance parses the instance text format. The format carries no due
// dates, so every job gets dueDate.
func ReadInstance(r io.Reader, dueDate int) (*Instance, error) {
	lr := newLineReader(r)

	header, err := lr.ints(2, "header")
	if err != nil {
		return nil, err
	}
	jobs, stages := header[0], header[1]
	if jobs <= 0 || stages <= 0 {
		return nil, fmt.Errorf("%w: line %d: jobs and stages must be > 0 (got %d %d)", ErrInvalidInstance, lr.line, jobs, stages)
	}

	machines, err := lr.ints(stages, "machines per stage")
	if err != nil {
		return nil, err
	}
	for s, m := range machines {
		if m < 1 {
			return nil, fmt.Errorf("%w: line %d: stage %d must have >= 1 machine (got %d)", ErrInvalidInstance, lr.line, s, m)
		}
	}

	procTimes := make([][][]int, stages)
	for s := 0; s < stages; s++ {
		procTimes[s] = make([][]int, 0, min(jobs, 1024))
		for j := 0; j < jobs; j++ {
			row, err := lr.ints(machines[s], fmt.Sprintf("stage %d job %d", s, j))
			if err != nil {
				return nil, err
			}
			procTimes[s] = append(procTimes[s], row)
		}
	}

	if _, err := lr.next(); err == nil {
		return nil, fmt.Errorf("%w: line %d: unexpected trailing data", ErrInvalidInstance, lr.line)
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	return NewInstance(jobs, stages, machines, procTimes, UniformDueDates(jobs, dueDate))
}

func WriteInstance(w io.Writer, inst *Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", inst.jobs, inst.stages)
	writeInts(bw, inst.machines)
	for s := 0; s < inst.stages; s++ {
		fmt.Fprintf(bw, "# Stage %d\n", s+1)
		for j := 0; j < inst.jobs; j++ {
			writeInts(bw, inst.procTimes[s][j])
		}
	}
	return bw.Flush()
}

func ReadPermutation(r io.Reader, n int) ([]int, error) {
	lr := newLineReader(r)
	fields, err := lr.next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedPermutation)
	}
	if err != nil {
		return nil, err
	}
	perm := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: value %q is not an integer", ErrMalformedPermutation, lr.line, f)
		}
		perm[i] = v
	}
	if _, err := lr.next(); err == nil {
		return nil, fmt.Errorf("%w: line %d: permutation must fit on one line", ErrMalformedPermutation, lr.line)
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := ValidatePermutation(perm, n); err != nil {
		return nil, err
	}
	return perm, nil
}

func WritePermutation(w io.Writer, perm []int) error {
	bw := bufio.NewWriter(w)
	writeInts(bw, perm)
	return bw.Flush()
}

func LoadInstance(path string, dueDate int) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := ReadInstance(f, dueDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

func LoadPermutation(path string, n int) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	perm, err := ReadPermutation(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return perm, nil
}

func SaveInstance(path string, inst *Instance) error {
	return writeFile(path, func(w io.Writer) error { return WriteInstance(w, inst) })
}

func SavePermutation(path string, perm []int) error {
	return writeFile(path, func(w io.Writer) error { return WritePermutation(w, perm) })
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeInts(w *bufio.Writer, vs []int) {
	for i, v := range vs {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.Itoa(v))
	}
	w.WriteByte('\n')
}
