package persistence

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"
)

var ErrNotEnoughSpace = errors.New("not enough disk space")

// AvailableSpace returns the number of bytes available to the user on the
// volume holding path.
func AvailableSpace(path string) uint64 {
	return du.NewDiskUsage(path).Available()
}

// CheckSpace fails when the volume holding dir has less than required bytes
// available.
func CheckSpace(dir string, required uint64) error {
	available := AvailableSpace(dir)
	if required > available {
		return fmt.Errorf("%w. required: %v, available: %v",
			ErrNotEnoughSpace, bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}
	return nil
}
