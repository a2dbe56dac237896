package util

import (
	"fmt"
	"hash/crc32"
	"os"
	"syscall"
)

// FileInfo identifies one version of a file on disk.
type FileInfo struct {
	ModTime     int64  // Unix modification time
	Size        int64  // Size in bytes
	Inode       uint64 // Inode number on Unix-like systems
	Fingerprint string // CRC32 of the content, hex
}

// Same reports whether two snapshots describe the same file content.
func (fi FileInfo) Same(other FileInfo) bool {
	return fi.Inode == other.Inode &&
		fi.Size == other.Size &&
		fi.ModTime == other.ModTime &&
		fi.Fingerprint == other.Fingerprint
}

// GetFileInfo stats a file and fingerprints its content.
// Supported on Linux and macOS.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	sysStat, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("failed to get file system information: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		ModTime:     stat.ModTime().Unix(),
		Size:        stat.Size(),
		Inode:       uint64(sysStat.Ino),
		Fingerprint: fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)),
	}, nil
}
