package service

import (
	"log"

	"github.com/MuxN4/linkup/internal/pkg"
)

// storeErr logs the underlying store failure and returns the opaque
// Unavailable sentinel. Raw storage errors never cross the service boundary.
func storeErr(op string, err error) error {
	log.Printf("%s: store error: %v", op, err)
	return pkg.ErrUnavailable
}
