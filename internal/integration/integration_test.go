// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mmcount/internal/app"
	"mmcount/internal/version"
)

const (
	polyA  = "AAAAAAAAAAAAAAAAAAAA"
	polyT  = "TTTTTTTTTTTTTTTTTTTT"
	polyAC = "AAAAAAAAAAAAAAAAAAAC"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, argv ...string) (string, string, int) {
	t.Helper()
	var out, errb bytes.Buffer
	code := app.Run(argv, &out, &errb)
	return out.String(), errb.String(), code
}

func TestEndToEnd_StrandExamples(t *testing.T) {
	lib := write(t, "lib.tsv", polyA+"\tm1\t5\n"+polyT+"\tm2\t3\n")
	q := write(t, "q.tsv", "chr\tpos\tUpstream20bp\nchr1\t10\t"+polyA+"\n")

	out, errs, code := run(t, "--quiet", q, lib)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errs)
	}
	want := "chr\tpos\tUpstream20bp\texact_match_weight\tone_mismatch_weight\n" +
		"chr1\t10\t" + polyA + "\t8\t0\n"
	if out != want {
		t.Fatalf("got\n%q\nwant\n%q", out, want)
	}

	lib = write(t, "lib.tsv", polyAC+"\tm1\t10\n")
	out, errs, code = run(t, "count", "-q", q, "-l", lib, "--no-header", "--quiet")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errs)
	}
	if want := "chr1\t10\t" + polyA + "\t0\t10\n"; out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestEndToEnd_GzipLibraryAndColumnIndex(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	fmt.Fprintf(zw, "%s\tx\t7\n", polyA)
	zw.Close()
	lib := write(t, "lib.tsv.gz", gz.String())
	q := write(t, "q.tsv", "a\tb\n"+polyA+"\tnote\n")

	out, errs, code := run(t, "-l", lib, "-q", q, "--column-index", "0", "-o", "json", "--quiet")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errs)
	}
	if !strings.Contains(out, `"exact": 7`) {
		t.Fatalf("unexpected json: %s", out)
	}
}

func randSeq(r *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[r.Intn(4)]
	}
	return string(b)
}

func TestParallelMatchesSerial(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var lib, q strings.Builder
	var refs []string
	for i := 0; i < 300; i++ {
		s := randSeq(r, 20)
		refs = append(refs, s)
		fmt.Fprintf(&lib, "%s\tx\t%d\n", s, r.Intn(1000))
	}
	q.WriteString("id\tUpstream20bp\n")
	for i := 0; i < 503; i++ {
		s := randSeq(r, 20)
		if i%3 == 0 {
			// guarantee some one-mismatch hits
			b := []byte(refs[r.Intn(len(refs))])
			b[r.Intn(20)] = 'N'
			s = string(b)
		}
		fmt.Fprintf(&q, "q%d\t%s\n", i, s)
	}
	libFn := write(t, "lib.tsv", lib.String())
	qFn := write(t, "q.tsv", q.String())

	get := func(workers int) string {
		out, errs, code := run(t, "-l", libFn, "-q", qFn, "-t", fmt.Sprint(workers), "-o", "jsonl", "--quiet")
		if code != 0 {
			t.Fatalf("workers=%d exit %d err %s", workers, code, errs)
		}
		return out
	}

	serial := get(1)
	if n := strings.Count(serial, "\n"); n != 503 {
		t.Fatalf("serial rows = %d, want 503", n)
	}
	for _, w := range []int{2, 7, 64} {
		if got := get(w); got != serial {
			t.Fatalf("workers=%d output differs from serial run", w)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	q := write(t, "q.tsv", "Upstream20bp\n"+polyA+"\n")
	cases := [][]string{
		{"--bogus"},
		{"-q", q},
		{"-q", q, "-l", q, "-o", "xml"},
		{"-q", q, "-l", q, "--workers", "-1"},
		{"mutants", "extra"},
	}
	for _, argv := range cases {
		_, errs, code := run(t, argv...)
		if code != 2 {
			t.Fatalf("%v: exit %d, want 2", argv, code)
		}
		if !strings.Contains(errs, "--help") {
			t.Fatalf("%v: missing usage hint in %q", argv, errs)
		}
	}
}

func TestMissingColumnExit2(t *testing.T) {
	lib := write(t, "lib.tsv", polyA+"\tx\t1\n")
	q := write(t, "q.tsv", "id\tseq\nr1\t"+polyA+"\n")
	_, errs, code := run(t, "-l", lib, "-q", q)
	if code != 2 || !strings.Contains(errs, "Upstream20bp") {
		t.Fatalf("exit %d stderr %q", code, errs)
	}
}

func TestHelpAndVersion(t *testing.T) {
	out, _, code := run(t, "--help")
	if code != 0 || !strings.Contains(out, "mutants") {
		t.Fatalf("help: exit %d out %q", code, out)
	}
	out, _, code = run(t, "--version")
	if code != 0 || out != "mmcount version "+version.Version+"\n" {
		t.Fatalf("version: exit %d out %q", code, out)
	}
}

func TestEnvSelectsFormat(t *testing.T) {
	lib := write(t, "lib.tsv", polyA+"\tx\t1\n")
	q := write(t, "q.tsv", "Upstream20bp\n"+polyA+"\n")
	t.Setenv("MMCOUNT_OUTPUT", "jsonl")
	out, errs, code := run(t, "-l", lib, "-q", q, "--quiet")
	if code != 0 {
		t.Fatalf("exit %d err %s", code, errs)
	}
	if !strings.HasPrefix(out, `{"index":0`) {
		t.Fatalf("expected jsonl, got %q", out)
	}
}

func TestMutantsCommand(t *testing.T) {
	dir := t.TempDir()
	_, errs, code := run(t, "mutants", "--max-k", "2", "--out-dir", dir, "--quiet")
	if code != 0 {
		t.Fatalf("exit %d err %s", code, errs)
	}
	for k, want := range map[int]int{1: 41, 2: 772} {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("MM%d.txt", k)))
		if err != nil {
			t.Fatal(err)
		}
		if n := strings.Count(string(data), "\n"); n != want {
			t.Fatalf("MM%d.txt has %d lines, want %d", k, n, want)
		}
	}
}
