// Package storage persists scan results.
package storage

import (
	"context"
	"time"

	"github.com/Comcast/spamscan/records"
)

// ScanRecord is a presentation of a scan as stored in a Storage
// system.
type ScanRecord struct {
	// Seq is the Storage's id for the scan within its input.
	Seq uint64 `json:"seq,omitempty"`

	// Input names what was scanned: a filename or "-" for stdin.
	Input string `json:"input"`

	// Grammar is the name of the Grammar that was used.
	Grammar string `json:"grammar,omitempty"`

	At time.Time `json:"at"`

	Result *records.Result `json:"result"`

	// Error is the error (if any) that stopped the scan.
	Error string `json:"error,omitempty"`
}

// Storage is a persistence interface for scan results.
type Storage interface {
	Open(ctx context.Context) error

	Close(ctx context.Context) error

	// WriteScan appends a ScanRecord to the history of its Input.
	// WriteScan sets the ScanRecord's Seq.
	WriteScan(ctx context.Context, sr *ScanRecord) error

	// GetScans returns the history of the given input, oldest
	// first.
	GetScans(ctx context.Context, input string) ([]*ScanRecord, error)

	// RemScans forgets the history of the given input.
	RemScans(ctx context.Context, input string) error
}

// Flagged returns the IDs flagged by every given scan.  A record
// that's only flagged sometimes is probably being edited.
func Flagged(srs []*ScanRecord) []int {
	if len(srs) == 0 {
		return nil
	}
	counts := make(map[int]int)
	for _, sr := range srs {
		if sr.Result == nil {
			return nil
		}
		seen := make(map[int]bool, len(sr.Result.Flagged))
		for _, id := range sr.Result.Flagged {
			if !seen[id] {
				seen[id] = true
				counts[id]++
			}
		}
	}
	acc := make([]int, 0, len(counts))
	for _, id := range srs[0].Result.Flagged {
		if counts[id] == len(srs) {
			acc = append(acc, id)
			counts[id] = 0
		}
	}
	return acc
}
