package ini

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const prefix = "sdl controller binding"

func newDoc(t *testing.T, lines ...string) (*Document, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := afero.WriteFile(fs, "soh.ini", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(fs, "soh.ini")
	if err != nil {
		t.Fatalf("Failed to open document: %v", err)
	}
	return d, fs
}

func twoSectionDoc(t *testing.T) (*Document, afero.Fs) {
	return newDoc(t,
		"[window]",
		"gfx backend=sdl",
		"[sdl controller binding X]",
		"btn_a=1",
		"btn_b=2",
		"[sdl controller binding Y]",
		"btn_a=3",
		"[sdl controller binding Z]",
		"btn_a=4",
	)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(afero.NewMemMapFs(), "nope.ini")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected *IOError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected IOError to wrap os.ErrNotExist, got %v", ioErr.Err)
	}
}

func TestOpen_CRLF(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "soh.ini", []byte("a=1\r\nb=2\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(fs, "soh.ini")
	if err != nil {
		t.Fatal(err)
	}
	lines := d.Lines()
	if len(lines) != 2 || lines[0] != "a=1" || lines[1] != "b=2" {
		t.Errorf("Expected [a=1 b=2], got %q", lines)
	}
}

func TestFindSection_ClosestFollowingHeader(t *testing.T) {
	d, _ := twoSectionDoc(t)

	r, ok := d.FindSection(prefix, "X")
	if !ok {
		t.Fatal("Expected section X to be found")
	}
	if r.Start != 2 || r.End != 5 {
		t.Errorf("Expected range [2, 5), got [%d, %d)", r.Start, r.End)
	}

	body, ok := d.ExtractSection(prefix, "X")
	if !ok {
		t.Fatal("Expected section X body")
	}
	if len(body) != 2 || body[0] != "btn_a=1" || body[1] != "btn_b=2" {
		t.Errorf("Expected only X's lines, got %q", body)
	}

	body, ok = d.ExtractSection(prefix, "Y")
	if !ok {
		t.Fatal("Expected section Y body")
	}
	if len(body) != 1 || body[0] != "btn_a=3" {
		t.Errorf("Expected only Y's lines, got %q", body)
	}
}

func TestFindSection_NotFound(t *testing.T) {
	d, _ := twoSectionDoc(t)

	tests := []struct {
		name string
		id   string
	}{
		{"absent id", "W"},
		{"last section has no closing header", "Z"},
		{"id prefix is not a match", "X "},
	}

	for _, tt := range tests {
		if _, ok := d.FindSection(prefix, tt.id); ok {
			t.Errorf("%s: expected section %q not to be found", tt.name, tt.id)
		}
		if _, ok := d.ExtractSection(prefix, tt.id); ok {
			t.Errorf("%s: expected no body for %q", tt.name, tt.id)
		}
	}
}

func TestFindSection_EmptyBody(t *testing.T) {
	d, _ := newDoc(t,
		"[sdl controller binding X]",
		"[sdl controller binding Y]",
		"btn_a=1",
		"[sdl controller binding Z]",
	)
	if _, ok := d.FindSection(prefix, "X"); ok {
		t.Error("Expected empty section to be reported as not found")
	}
}

func TestReplaceSection_InPlace(t *testing.T) {
	d, _ := twoSectionDoc(t)

	d.ReplaceSection(prefix, "X", []string{"btn_a=9", "btn_b=8", "btn_z=7"})

	expected := []string{
		"[window]",
		"gfx backend=sdl",
		"[sdl controller binding X]",
		"btn_a=9",
		"btn_b=8",
		"btn_z=7",
		"[sdl controller binding Y]",
		"btn_a=3",
		"[sdl controller binding Z]",
		"btn_a=4",
	}
	assertLines(t, d.Lines(), expected)
}

func TestReplaceSection_AppendOnAbsence(t *testing.T) {
	d, _ := twoSectionDoc(t)
	before := d.Lines()

	d.ReplaceSection(prefix, "NEW", []string{"btn_a=0"})

	expected := append(before, "[sdl controller binding NEW]", "btn_a=0")
	assertLines(t, d.Lines(), expected)
}

func TestSingleKey(t *testing.T) {
	d, _ := twoSectionDoc(t)

	i, ok := d.FindSingleKey("gfx backend=")
	if !ok || i != 1 {
		t.Errorf("Expected key at line 1, got %d, %v", i, ok)
	}

	v, err := d.SingleKeyValue("gfx backend")
	if err != nil {
		t.Fatal(err)
	}
	if v != "sdl" {
		t.Errorf("Expected 'sdl', got '%s'", v)
	}

	if err := d.ReplaceSingleKeyValue("gfx backend", ""); err != nil {
		t.Fatal(err)
	}
	if got := d.Lines()[1]; got != "gfx backend=" {
		t.Errorf("Expected 'gfx backend=', got '%s'", got)
	}
}

func TestSingleKey_Missing(t *testing.T) {
	d, _ := newDoc(t, "[window]", "fullscreen=0")

	var mk *MissingKeyError
	if err := d.ReplaceSingleKeyValue("gfx backend", "sdl"); !errors.As(err, &mk) {
		t.Fatalf("Expected *MissingKeyError, got %v", err)
	}
	if mk.Key != "gfx backend" {
		t.Errorf("Expected key 'gfx backend', got '%s'", mk.Key)
	}
	if _, err := d.SingleKeyValue("gfx backend"); !errors.As(err, &mk) {
		t.Errorf("Expected *MissingKeyError, got %v", err)
	}
	assertLines(t, d.Lines(), []string{"[window]", "fullscreen=0"})
}

func TestSave_WritesBackupAndFile(t *testing.T) {
	d, fs := twoSectionDoc(t)
	original, err := afero.ReadFile(fs, "soh.ini")
	if err != nil {
		t.Fatal(err)
	}
	d.ReplaceSection(prefix, "Y", []string{"btn_a=5"})

	want := strings.Join(d.Lines(), LineEnding) + LineEnding
	if err := d.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	backup, err := afero.ReadFile(fs, "soh.ini"+BackupSuffix)
	if err != nil {
		t.Fatalf("Backup not written: %v", err)
	}
	if string(backup) != string(original) {
		t.Errorf("Backup mismatch:\nwant %q\ngot  %q", original, backup)
	}
	if strings.Contains(string(backup), "btn_a=5") {
		t.Error("Expected backup to hold the content from before the save")
	}
	data, err := afero.ReadFile(fs, "soh.ini")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("File mismatch:\nwant %q\ngot  %q", want, data)
	}

	reopened, err := Open(fs, "soh.ini")
	if err != nil {
		t.Fatal(err)
	}
	assertLines(t, reopened.Lines(), d.Lines())
}

func TestSave_BackupTracksPreviousSave(t *testing.T) {
	d, fs := twoSectionDoc(t)

	d.ReplaceSection(prefix, "X", []string{"btn_a=99"})
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	first, err := afero.ReadFile(fs, "soh.ini")
	if err != nil {
		t.Fatal(err)
	}

	d.ReplaceSection(prefix, "X", []string{"btn_a=100"})
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	backup, err := afero.ReadFile(fs, "soh.ini"+BackupSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != string(first) {
		t.Errorf("Expected backup to equal the first save:\nwant %q\ngot  %q", first, backup)
	}
}

func TestOpen_LongLine(t *testing.T) {
	long := "btn_a=" + strings.Repeat("9", 2<<20)
	fs := afero.NewMemMapFs()
	content := "[sdl controller binding X]\r\n" + long + "\r\n[sdl controller binding Y]\r\n"
	if err := afero.WriteFile(fs, "soh.ini", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(fs, "soh.ini")
	if err != nil {
		t.Fatalf("Failed to open document with a long line: %v", err)
	}
	assertLines(t, d.Lines(), []string{"[sdl controller binding X]", long, "[sdl controller binding Y]"})
}

func TestOpen_LineEndings(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"\n", []string{""}},
	}
	for _, test := range tests {
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, "soh.ini", []byte(test.content), 0644); err != nil {
			t.Fatal(err)
		}
		d, err := Open(fs, "soh.ini")
		if err != nil {
			t.Fatal(err)
		}
		assertLines(t, d.Lines(), test.want)
	}
}

func TestSave_NoOpStillWritesBackup(t *testing.T) {
	d, fs := newDoc(t, "gfx backend=")
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(fs, "soh.ini"+BackupSuffix); !ok {
		t.Error("Expected backup to be written for a no-op save")
	}
}

func TestSave_OsFs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soh.ini")
	if err := os.WriteFile(path, []byte("gfx backend=sdl\n"), 0600); err != nil {
		t.Fatal(err)
	}

	d, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ReplaceSingleKeyValue("gfx backend", ""); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "gfx backend="+LineEnding {
		t.Errorf("Unexpected content %q", data)
	}
	info, err := os.Stat(path + BackupSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected backup mode 0600, got %v", info.Mode().Perm())
	}
}

func TestSave_ReadOnlyFs(t *testing.T) {
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "soh.ini", []byte("gfx backend=\n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(afero.NewReadOnlyFs(mem), "soh.ini")
	if err != nil {
		t.Fatal(err)
	}

	var ioErr *IOError
	if err := d.Save(); !errors.As(err, &ioErr) {
		t.Fatalf("Expected *IOError, got %v", err)
	}
	if ioErr.Path != "soh.ini"+BackupSuffix {
		t.Errorf("Expected backup write to fail first, got path %s", ioErr.Path)
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		insert   []string
		expected []string
	}{
		{"replace middle", 1, 3, []string{"x"}, []string{"a", "x", "d"}},
		{"insert", 1, 1, []string{"x", "y"}, []string{"a", "x", "y", "b", "c", "d"}},
		{"delete", 0, 2, nil, []string{"c", "d"}},
		{"append", 4, 4, []string{"e"}, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		l := Lines{"a", "b", "c", "d"}
		l.Splice(tt.start, tt.end, tt.insert...)
		assertLines(t, l, tt.expected)
	}
}

func assertLines(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(got), strings.Join(got, "\n"))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}
