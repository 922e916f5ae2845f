package idgenerator

import (
	"os"
	"time"
)

// defaultSeed mixes wall-clock time with the pid so that concurrently
// started processes don't share a seed.
func defaultSeed() int64 {
	return time.Now().UnixNano() ^ int64(os.Getpid())<<32
}
