// Package quota bounds the volume of data the read-side tools will return.
// The caps are static thresholds, enforced uniformly regardless of which
// agent role asks: read quotas protect the process, not the files.
package quota

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Defaults for all read-side caps.
const (
	DefaultMaxReadFileSize  = 1 << 20 // 1 MiB, single-file read without offset/limit
	DefaultMaxBatchFileSize = 1 << 20 // 1 MiB per file inside a batch read
	DefaultMaxBatchFiles    = 100     // paths per batch read
	DefaultMaxGlobResults   = 1000    // entries per glob/listing query
	DefaultMaxReadLines     = 10000   // lines per ranged read
)

// Limits holds the read-side caps. The zero value is not useful; construct
// with Default and override fields as needed (tests shrink them).
type Limits struct {
	MaxReadFileSize  int64
	MaxBatchFileSize int64
	MaxBatchFiles    int
	MaxGlobResults   int
	// MaxReadLines clamps ranged reads. The offset/limit escape hatch
	// bypasses the byte cap because the caller bounded the read itself, but
	// a huge limit would otherwise reopen the hole the byte cap closes.
	MaxReadLines int
}

func Default() Limits {
	return Limits{
		MaxReadFileSize:  DefaultMaxReadFileSize,
		MaxBatchFileSize: DefaultMaxBatchFileSize,
		MaxBatchFiles:    DefaultMaxBatchFiles,
		MaxGlobResults:   DefaultMaxGlobResults,
		MaxReadLines:     DefaultMaxReadLines,
	}
}

// SizeError reports a file too large to read whole. It is a hard stop
// rather than a truncation: returning partial content a caller did not ask
// for would silently mislead it.
type SizeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("file %s is %s, over the %s single-read limit; pass offset/limit to read a slice",
		e.Path, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

// TooLarge formats the per-path substitute used in batch reads when one
// file exceeds the per-file cap.
func TooLarge(size, limit int64) string {
	return fmt.Sprintf("Error: file too large (%s, limit %s)",
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
}
