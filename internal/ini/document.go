// Package ini edits the line-oriented configuration file that holds
// controller binding sections and the global graphics backend key.
//
// The file is treated as an ordered list of lines. Sections and keys are
// located by scanning; nothing else about the grammar is interpreted.
package ini

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// BackupSuffix is appended to the document path for the pre-save copy.
const BackupSuffix = ".backup"

// LineEnding terminates every written line.
var LineEnding = defaultLineEnding()

func defaultLineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// MissingKeyError reports that a required single key line is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// Document is the in-memory line buffer of one configuration file.
type Document struct {
	fs    afero.Fs
	path  string
	lines Lines
	saved []byte // file content as last read or written
}

// Open reads every line of path from fs.
func Open(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return &Document{fs: fs, path: path, lines: splitLines(data), saved: data}, nil
}

// OpenFile opens path on the host file system.
func OpenFile(path string) (*Document, error) {
	return Open(afero.NewOsFs(), path)
}

// splitLines splits on "\n" and drops a trailing "\r" from each line. A
// final line terminator does not start another line.
func splitLines(data []byte) Lines {
	if len(data) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	lines := Lines(strings.Split(text, "\n"))
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

// Lines returns a copy of the current lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Header returns the header line of the section prefix/id.
func Header(prefix, id string) string {
	return "[" + prefix + " " + id + "]"
}

// FindSection locates the section "[<prefix> <id>]". The section ends at the
// closest following header of the same prefix. A section without a closing
// header, or with an empty body, is reported as not found.
func (d *Document) FindSection(prefix, id string) (Range, bool) {
	header := Header(prefix, id)
	generic := "[" + prefix + " "

	start := -1
	for i, line := range d.lines {
		if start == -1 {
			if line == header {
				start = i
			}
			continue
		}
		if strings.HasPrefix(line, generic) {
			if i == start+1 {
				return Range{}, false
			}
			return Range{Start: start, End: i}, true
		}
	}
	return Range{}, false
}

// ExtractSection returns the body lines of a section, header excluded.
func (d *Document) ExtractSection(prefix, id string) ([]string, bool) {
	r, ok := d.FindSection(prefix, id)
	if !ok {
		return nil, false
	}
	out := make([]string, r.End-r.Body())
	copy(out, d.lines[r.Body():r.End])
	return out, true
}

// ReplaceSection swaps the section's lines for a regenerated header followed
// by body. When the section is not found, header and body are appended.
func (d *Document) ReplaceSection(prefix, id string, body []string) {
	insert := make([]string, 0, len(body)+1)
	insert = append(insert, Header(prefix, id))
	insert = append(insert, body...)

	if r, ok := d.FindSection(prefix, id); ok {
		d.lines.Splice(r.Start, r.End, insert...)
		return
	}
	d.lines.Splice(len(d.lines), len(d.lines), insert...)
}

// FindSingleKey returns the index of the first line starting with keyPrefix.
func (d *Document) FindSingleKey(keyPrefix string) (int, bool) {
	for i, line := range d.lines {
		if strings.HasPrefix(line, keyPrefix) {
			return i, true
		}
	}
	return -1, false
}

// SingleKeyValue returns the trimmed value of the "<key>=" line.
func (d *Document) SingleKeyValue(key string) (string, error) {
	i, ok := d.FindSingleKey(key + "=")
	if !ok {
		return "", &MissingKeyError{Key: key}
	}
	return strings.TrimSpace(strings.TrimPrefix(d.lines[i], key+"=")), nil
}

// ReplaceSingleKeyValue overwrites the "<key>=" line. The key must already
// exist; this tool never creates it.
func (d *Document) ReplaceSingleKeyValue(key, value string) error {
	i, ok := d.FindSingleKey(key + "=")
	if !ok {
		return &MissingKeyError{Key: key}
	}
	d.lines[i] = key + "=" + value
	return nil
}

// Save copies the file content as it was before this save, byte for byte, to
// the backup path and then overwrites the document path with the current
// lines. The two writes are independent: if the second fails the backup is
// kept and the main file may be left in its previous or a partially written
// state.
func (d *Document) Save() error {
	backup := d.path + BackupSuffix
	mode := fileMode(d.fs, d.path)
	if err := afero.WriteFile(d.fs, backup, d.saved, mode); err != nil {
		return &IOError{Op: "write", Path: backup, Err: err}
	}
	content := d.render()
	if err := afero.WriteFile(d.fs, d.path, content, mode); err != nil {
		return &IOError{Op: "write", Path: d.path, Err: err}
	}
	d.saved = content
	return nil
}

func (d *Document) render() []byte {
	var buf bytes.Buffer
	for _, line := range d.lines {
		buf.WriteString(line)
		buf.WriteString(LineEnding)
	}
	return buf.Bytes()
}

func fileMode(fs afero.Fs, path string) os.FileMode {
	if info, err := fs.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
