package fileops

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// copyFile streams src into dst, carrying over the source's permission bits
// and modification time, and verifies the byte count against the source size.
func copyFile(src, dst string, srcInfo os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	written, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if written != srcInfo.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	// Best effort; some filesystems reject timestamp updates.
	_ = os.Chtimes(dst, time.Now(), srcInfo.ModTime())
	return nil
}

// checkFreeSpace verifies the destination volume can hold need bytes. A
// failing statfs is ignored so exotic filesystems still get a copy attempt;
// the copy itself surfaces any real error.
func checkFreeSpace(dir string, need int64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return nil
	}
	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < need {
		return fmt.Errorf("insufficient space on destination volume: need %d bytes, have %d", need, free)
	}
	return nil
}
