package utils

import (
	"context"
	"fmt"
	_ "github.com/rclone/rclone/backend/all"
	"github.com/rclone/rclone/fs"
	"github.com/rclone/rclone/fs/config"
	"github.com/rclone/rclone/fs/operations"
	"github.com/rclone/rclone/fs/sync"
	"os"
	"path/filepath"
	gosync "sync"
)

var rcloneConfigOnce gosync.Once

func loadRcloneConfig() {
	rcloneConfigOnce.Do(config.LoadConfig)
}

// MoveFiles moves the local src (a file or a directory) into dst, which may be
// any rclone remote such as "gdrive:records/". Errors are returned, never fatal.
func MoveFiles(ctx context.Context, src string, dst string) error {
	st, err := os.Stat(src)
	if err != nil {
		return err
	}
	loadRcloneConfig()

	fdst, err := fs.NewFs(dst)
	if err != nil {
		return fmt.Errorf("failed to create file system for %q: %w", dst, err)
	}
	if st.IsDir() {
		fsrc, err := fs.NewFs(src)
		if err != nil {
			return fmt.Errorf("failed to create file system for %q: %w", src, err)
		}
		return sync.MoveDir(ctx, fdst, fsrc, false, false)
	}

	fsrc, err := fs.NewFs(filepath.Dir(src))
	if err != nil {
		return fmt.Errorf("failed to create file system for %q: %w", filepath.Dir(src), err)
	}
	srcFileName := filepath.Base(src)
	return operations.MoveFile(ctx, fdst, fsrc, srcFileName, srcFileName)
}
