// Package speech implements the last-resort acquisition stage: download the
// video's audio stream and run it through a remote speech-to-text service.
package speech

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Scratch is a uniquely-named transient file for one request's audio
// download. It exists only between acquisition and the transcription call;
// Release removes it on every exit path.
type Scratch struct {
	file *os.File
	path string
}

// NewScratch creates the transient audio file under the OS temp directory
// with a per-request unique name.
func NewScratch() (*Scratch, error) {
	path := filepath.Join(os.TempDir(), "transcript-audio-"+uuid.NewString())
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	return &Scratch{file: file, path: path}, nil
}

// Path returns the scratch file's location on disk.
func (s *Scratch) Path() string {
	return s.path
}

// File returns the open file handle for writing the download into.
func (s *Scratch) File() *os.File {
	return s.file
}

// Release closes and deletes the scratch file. Safe to call more than once;
// intended for defer so deletion is guaranteed even when transcription fails.
func (s *Scratch) Release() {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	if s.path != "" {
		_ = os.Remove(s.path)
		s.path = ""
	}
}
