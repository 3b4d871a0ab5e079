package safe

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat owns a gocv.Mat. Every transform returns a fresh Mat; callers Close
// what they receive.
type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
	tag     string
}

// NewMatFromMatWithTag clones srcMat; the caller keeps ownership of srcMat.
func NewMatFromMatWithTag(srcMat gocv.Mat, tag string) (*Mat, error) {
	if srcMat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	if srcMat.Rows() <= 0 || srcMat.Cols() <= 0 {
		return nil, fmt.Errorf("source Mat has invalid dimensions: %dx%d", srcMat.Cols(), srcMat.Rows())
	}

	clonedMat := srcMat.Clone()
	if clonedMat.Empty() {
		clonedMat.Close()
		return nil, fmt.Errorf("failed to clone Mat")
	}

	return track(clonedMat, tag), nil
}

// Own takes ownership of mat without copying. mat is closed on failure.
func Own(mat gocv.Mat, tag string) (*Mat, error) {
	if mat.Empty() || mat.Rows() <= 0 || mat.Cols() <= 0 {
		mat.Close()
		return nil, fmt.Errorf("cannot own empty Mat (%s)", tag)
	}
	return track(mat, tag), nil
}

func track(mat gocv.Mat, tag string) *Mat {
	safeMat := &Mat{
		mat:     mat,
		isValid: 1,
		tag:     tag,
	}

	// Set finalizer for cleanup if Close() is not called
	runtime.SetFinalizer(safeMat, (*Mat).finalize)

	return safeMat
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Empty() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return true
	}

	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Channels()
}

func (sm *Mat) Type() gocv.MatType {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}

	return sm.mat.Type()
}

func (sm *Mat) Tag() string {
	return sm.tag
}

func (sm *Mat) Clone() (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot clone invalid Mat")
	}

	if sm.mat.Empty() {
		return nil, fmt.Errorf("cannot clone empty Mat")
	}

	return NewMatFromMatWithTag(sm.mat, sm.tag+"_clone")
}

// Region copies the pixels inside rect into a new Mat.
func (sm *Mat) Region(rect image.Rectangle) (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot take region of invalid Mat")
	}

	bounds := image.Rect(0, 0, sm.mat.Cols(), sm.mat.Rows())
	if rect.Empty() || !rect.In(bounds) {
		return nil, fmt.Errorf("region %v outside of %v", rect, bounds)
	}

	view := sm.mat.Region(rect)
	defer view.Close()

	return NewMatFromMatWithTag(view, sm.tag+"_region")
}

// Bytes returns a copy of the pixel data in row-major, channel-interleaved order.
func (sm *Mat) Bytes() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("Mat is invalid")
	}

	if sm.mat.IsContinuous() {
		return sm.mat.ToBytes(), nil
	}

	continuous := sm.mat.Clone()
	defer continuous.Close()
	return continuous.ToBytes(), nil
}

// Pixel returns the channel values at row, col.
func (sm *Mat) Pixel(row, col int) ([]uint8, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("Mat is invalid")
	}

	if err := ValidateCoordinates(row, col, sm.mat.Rows(), sm.mat.Cols(), "Pixel"); err != nil {
		return nil, err
	}

	if sm.mat.Channels() == 1 {
		return []uint8{sm.mat.GetUCharAt(row, col)}, nil
	}
	return []uint8(sm.mat.GetVecbAt(row, col)), nil
}

func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		if !sm.mat.Empty() {
			sm.mat.Close()
		}

		// Clear finalizer since we're cleaning up manually
		runtime.SetFinalizer(sm, nil)
	}
}

// finalize is called by Go's garbage collector as last resort cleanup
func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}
