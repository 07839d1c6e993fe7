package input

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/statnl/pkg/loader"
	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

type stubRemote struct {
	content map[string]string
}

func (s stubRemote) GetFileContent(ctx context.Context, file loader.TripleFile) ([]byte, error) {
	return []byte(s.content[file.Path]), nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadKeepsPatternAndFileOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.csv"), "subject_id,predicate,object_value\nb,name,B\n")
	writeFile(t, filepath.Join(root, "a.csv"), "subject_id,predicate,object_value\na,name,A\n")
	writeFile(t, filepath.Join(root, "nested", "c.csv"), "subject_id,predicate,object_value\nc,name,C\n")
	writeFile(t, filepath.Join(root, "graph.nq"), "<dcid:g> <dcs:name> \"G\" .\n")

	l := NewLoader(NewLoaderParams{
		ParallelFiles: 2,
		Remote: stubRemote{content: map[string]string{
			"s3://bucket/r.csv": "subject_id,predicate,object_value\nr,name,R\n",
		}},
	})

	triples, err := l.Load(context.Background(), []string{
		filepath.Join(root, "graph.nq"),
		"s3://bucket/r.csv",
		filepath.Join(root, "**", "*.csv"),
		filepath.Join(root, "a.csv"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var subjects []string
	for _, tr := range triples {
		subjects = append(subjects, tr.SubjectID)
	}
	expected := []string{"g", "r", "a", "b", "c"}
	if len(subjects) != len(expected) {
		t.Fatalf("expected subjects %v, got %v", expected, subjects)
	}
	for i := range expected {
		if subjects[i] != expected[i] {
			t.Fatalf("expected subjects %v, got %v", expected, subjects)
		}
	}
	if triples[0].Kind() != triple.PredicateName || triples[0].ObjectValue != "G" {
		t.Fatalf("unexpected n-quads triple %v", triples[0])
	}
}

func TestResolveErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), "hello")

	tests := []struct {
		name     string
		patterns []string
	}{
		{name: "no patterns", patterns: nil},
		{name: "no match", patterns: []string{filepath.Join(root, "*.csv")}},
		{name: "unsupported extension", patterns: []string{filepath.Join(root, "notes.txt")}},
		{name: "remote without loader", patterns: []string{"s3://bucket/a.csv"}},
	}

	l := NewLoader(NewLoaderParams{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Resolve(tt.patterns); err == nil {
				t.Fatalf("expected error for %v", tt.patterns)
			}
		})
	}
}

func TestLoadReportsParseErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.csv"), "subject_id,object_id\nx,y\n")

	_, err := NewLoader(NewLoaderParams{}).Load(context.Background(), []string{filepath.Join(root, "bad.csv")})
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultLoaderReadsLocalFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.csv"), "subject_id,predicate,object_value\na,name,A\n")
	writeFile(t, filepath.Join(root, "b.csv"), "subject_id,predicate,object_value\nb,name,B\n")

	triples, err := DefaultLoader{ParallelFiles: 1}.Load(context.Background(), []string{filepath.Join(root, "*.csv")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 2 || triples[0].SubjectID != "a" || triples[1].SubjectID != "b" {
		t.Fatalf("unexpected triples %v", triples)
	}
}
