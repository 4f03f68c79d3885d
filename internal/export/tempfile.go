package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gyeh/claimstats/internal/claims"
)

// WithTempWorkbook writes the view's workbook to a fresh temp file and hands
// its path to fn. The file is removed when WithTempWorkbook returns, whether
// or not fn succeeds.
func WithTempWorkbook(v *claims.View, fn func(path string) error) error {
	tmp, err := os.CreateTemp("", "claims-report-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp workbook: %w", err)
	}
	if err := SaveWorkbook(path, v); err != nil {
		return err
	}
	return fn(path)
}

// CopyFile copies src to dst, creating or truncating dst.
func CopyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
