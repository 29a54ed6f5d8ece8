package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecorder_WritesVerbatimLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market_data.log")

	r, err := OpenRecorder(path)
	if err != nil {
		t.Fatalf("OpenRecorder: %v", err)
	}

	lines := []string{
		`{"b":[["100.00","1"]],"a":[]}`,
		`not even json - recorded verbatim anyway`,
	}
	for _, l := range lines {
		if err := r.Record([]byte(l)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := lines[0] + "\n" + lines[1] + "\n"
	if string(data) != want {
		t.Errorf("log content = %q, want %q", data, want)
	}
}

func TestRecorder_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market_data.log")

	for i := 0; i < 2; i++ {
		r, err := OpenRecorder(path)
		if err != nil {
			t.Fatalf("OpenRecorder: %v", err)
		}
		if err := r.Record([]byte("x")); err != nil {
			t.Fatalf("Record: %v", err)
		}
		r.Close()
	}

	data, _ := os.ReadFile(path)
	if string(data) != "x\nx\n" {
		t.Errorf("log content = %q, want %q", data, "x\nx\n")
	}
}
