package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tail returns at most maxLines complete lines from the end of the file at
// path, and the offset just past the last of them, from a single read of the
// file. A negative maxLines returns every line; zero returns only the offset.
// A trailing partial line is neither returned nor counted, so ReadFrom picks
// it up whole. A missing file reads as empty.
func Tail(path string, maxLines int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 64*1024)

	var ring []string
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	count := 0
	idx := 0
	var offset int64
	for {
		raw, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read log: %w", err)
		}
		offset += int64(len(raw))
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		switch {
		case maxLines < 0:
			ring = append(ring, line)
		case maxLines > 0:
			ring[idx] = line
			idx = (idx + 1) % maxLines
			if count < maxLines {
				count++
			}
		}
	}

	if maxLines <= 0 {
		return ring, offset, nil
	}
	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

// ReadFrom returns the complete lines written after offset and the offset to
// resume from. A trailing partial line is left for the next call. When the file
// shrank below offset it is treated as truncated and read from the start.
func ReadFrom(path string, offset int64) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, offset, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}
	if info.Size() == offset {
		return nil, offset, nil
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, offset, fmt.Errorf("read log: %w", err)
	}
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return nil, offset, nil
	}

	var lines []string
	for _, raw := range bytes.Split(data[:end], []byte{'\n'}) {
		lines = append(lines, string(bytes.TrimRight(raw, "\r")))
	}
	return lines, offset + int64(end) + 1, nil
}
