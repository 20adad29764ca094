package report

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// FileName is the report file written under <dir>/Datas.
const FileName = "ResultReport.json"

// FileStore writes the latest report as JSON with a BLAKE2b-256 sidecar so
// hand-edited reports can be told apart from written ones.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Join(dir, "Datas")}
}

func (s *FileStore) Path() string { return filepath.Join(s.dir, FileName) }

func (s *FileStore) Save(_ context.Context, r Report) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("report dir: %w", err)
	}
	if err := os.WriteFile(s.Path(), raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.WriteFile(s.Path()+".b2", []byte(Digest(raw)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report digest: %w", err)
	}
	return nil
}

// Load reads the stored report and checks it against its digest.
func (s *FileStore) Load() (Report, error) {
	var r Report
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		return r, fmt.Errorf("read report: %w", err)
	}
	sum, err := os.ReadFile(s.Path() + ".b2")
	if err != nil {
		return r, fmt.Errorf("read report digest: %w", err)
	}
	if string(trimNewline(sum)) != Digest(raw) {
		return r, ErrDigestMismatch
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}

// ErrDigestMismatch means the report file changed after it was written.
var ErrDigestMismatch = errors.New("report digest mismatch")

// Digest is the hex BLAKE2b-256 of raw.
func Digest(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

// MultiStore saves to every store and joins their errors.
type MultiStore []Store

func (m MultiStore) Save(ctx context.Context, r Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
