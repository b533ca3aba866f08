package cachesim

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
)

// An Access is a single parsed trace record.
type Access struct {
	// Addr is the byte address accessed.
	Addr uint64
	// Size is the access width in bytes; zero if the trace omits it.
	Size uint32
	// Write distinguishes writes from reads.
	Write bool
}

// CompressedTraceSuffix marks snappy-framed trace files for [OpenTrace].
const CompressedTraceSuffix = ".sz"

type traceFile struct {
	io.Reader
	file *os.File
}

func (tf traceFile) Close() error { return tf.file.Close() }

// OpenTrace opens a trace file for reading, transparently decompressing
// files named with [CompressedTraceSuffix].
func OpenTrace(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, CompressedTraceSuffix) {
		return file, nil
	}
	return traceFile{
		Reader: snappy.NewReader(file),
		file:   file,
	}, nil
}

// ReadTrace parses accesses from r, one per line:
//
//	<R|W> <addr> [size]
//
// addr and size accept any base understood by [strconv.ParseUint]
// with base 0 (0x-prefixed hex, decimal, ...). Blank lines and lines
// starting with '#' are skipped. Iteration stops after yielding the
// first malformed line's error.
func ReadTrace(r io.Reader) iter.Seq2[Access, error] {
	return func(yield func(Access, error) bool) {
		var (
			scanner = bufio.NewScanner(r)
			lineNo  int
		)
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			access, err := parseAccess(line)
			if err != nil {
				yield(Access{}, fmt.Errorf(
					"trace line %d: %w", lineNo, err))
				return
			}
			if !yield(access, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Access{}, err)
		}
	}
}

func parseAccess(line string) (Access, error) {
	fields := strings.Fields(line)
	if count := len(fields); count < 2 || count > 3 {
		return Access{}, fmt.Errorf(
			"expected `<R|W> <addr> [size]` but got %d fields", len(fields))
	}
	var access Access
	switch op := fields[0]; op {
	case "R", "r":
	case "W", "w":
		access.Write = true
	default:
		return Access{}, fmt.Errorf("unknown operation %q", op)
	}
	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Access{}, fmt.Errorf("bad address: %w", err)
	}
	access.Addr = addr
	if len(fields) == 3 {
		size, err := strconv.ParseUint(fields[2], 0, 32)
		if err != nil {
			return Access{}, fmt.Errorf("bad size: %w", err)
		}
		access.Size = uint32(size)
	}
	return access, nil
}

// Replay feeds every access parsed from r through c,
// returning the first parse error encountered.
func Replay(c *Cache, r io.Reader) error {
	blockSize := c.config.Engine.BlockSize
	for access, err := range ReadTrace(r) {
		if err != nil {
			return err
		}
		size := access.Size
		if size == 0 {
			size = blockSize
		}
		c.Access(access.Addr, access.Write, size)
	}
	return nil
}
