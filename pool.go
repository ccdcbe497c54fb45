package nugeom

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/md3"
)

// VecPool holds scratch buffers for solid evaluation. Operations such as
// union and difference acquire auxiliary distance buffers from it
// so that evaluation of a deep solid tree does not allocate.
//
// A VecPool is not safe for concurrent use.
type VecPool struct {
	V3    bufPool[md3.Vec]
	Float bufPool[float64]
}

// GetVecPool extracts a [VecPool] from userData, which may be a *VecPool
// or a type implementing a VecPool() *VecPool method.
func GetVecPool(userData any) (*VecPool, error) {
	switch ud := userData.(type) {
	case *VecPool:
		if ud == nil {
			return nil, errors.New("nil *VecPool")
		}
		return ud, nil
	case interface{ VecPool() *VecPool }:
		vp := ud.VecPool()
		if vp == nil {
			return nil, errors.New("nil VecPool returned by userData")
		}
		return vp, nil
	}
	return nil, fmt.Errorf("userData of type %T does not provide a VecPool", userData)
}

// AssertAllReleased returns an error if any buffer acquired from the pool has not been released.
func (vp *VecPool) AssertAllReleased() error {
	err := vp.Float.assertAllReleased()
	if err != nil {
		return fmt.Errorf("float pool: %w", err)
	}
	err = vp.V3.assertAllReleased()
	if err != nil {
		return fmt.Errorf("vec3 pool: %w", err)
	}
	return nil
}

type bufPool[T any] struct {
	free     [][]T
	acquired int
}

// Acquire returns a buffer of the requested length. Contents are not zeroed.
func (bp *bufPool[T]) Acquire(length int) []T {
	bp.acquired++
	for i, buf := range bp.free {
		if cap(buf) >= length {
			last := len(bp.free) - 1
			bp.free[i] = bp.free[last]
			bp.free = bp.free[:last]
			return buf[:length]
		}
	}
	return make([]T, length)
}

// Release returns buf to the pool for reuse.
func (bp *bufPool[T]) Release(buf []T) {
	bp.acquired--
	if cap(buf) == 0 {
		return
	}
	bp.free = append(bp.free, buf[:0])
}

func (bp *bufPool[T]) assertAllReleased() error {
	if bp.acquired != 0 {
		return fmt.Errorf("%d buffers not released", bp.acquired)
	}
	return nil
}
