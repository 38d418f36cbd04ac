package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat wraps a gocv.Mat with a validity flag so a closed buffer is never
// handed back to OpenCV. A Mat is owned by exactly one holder; Close it when done.
type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
	id      uint64
}

var nextMatID uint64

func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return wrap(mat), nil
}

// NewMatFromScalar allocates a rows x cols Mat filled with s.
func NewMatFromScalar(s gocv.Scalar, rows, cols int, matType gocv.MatType) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSizeFromScalar(s, rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return wrap(mat), nil
}

// NewMatFromMat clones srcMat; the caller keeps ownership of srcMat.
func NewMatFromMat(srcMat gocv.Mat) (*Mat, error) {
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

	return wrap(clonedMat), nil
}

// Adopt takes ownership of m without copying. m is closed if it is empty.
func Adopt(m gocv.Mat) (*Mat, error) {
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("cannot adopt empty Mat")
	}
	return wrap(m), nil
}

func wrap(m gocv.Mat) *Mat {
	safeMat := &Mat{
		mat:     m,
		isValid: 1,
		id:      atomic.AddUint64(&nextMatID, 1),
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

func (sm *Mat) Clone() (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot clone invalid Mat")
	}

	if sm.mat.Empty() {
		return nil, fmt.Errorf("cannot clone empty Mat")
	}

	return NewMatFromMat(sm.mat)
}

func (sm *Mat) GetUCharAt(row, col int) (uint8, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0, fmt.Errorf("Mat is invalid")
	}

	if err := ValidateCoordinates(row, col, sm.mat.Rows(), sm.mat.Cols(), "GetUCharAt"); err != nil {
		return 0, err
	}

	return sm.mat.GetUCharAt(row, col), nil
}

func (sm *Mat) SetUCharAt(row, col int, value uint8) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.IsValid() {
		return fmt.Errorf("Mat is invalid")
	}

	if err := ValidateCoordinates(row, col, sm.mat.Rows(), sm.mat.Cols(), "SetUCharAt"); err != nil {
		return err
	}

	sm.mat.SetUCharAt(row, col, value)
	return nil
}

func (sm *Mat) GetUCharAt3(row, col, channel int) (uint8, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0, fmt.Errorf("Mat is invalid")
	}

	if err := ValidateCoordinates(row, col, sm.mat.Rows(), sm.mat.Cols(), "GetUCharAt3"); err != nil {
		return 0, err
	}

	if err := ValidateChannel(channel, sm.mat.Channels(), "GetUCharAt3"); err != nil {
		return 0, err
	}

	return sm.mat.GetUCharAt3(row, col, channel), nil
}

func (sm *Mat) SetUCharAt3(row, col, channel int, value uint8) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.IsValid() {
		return fmt.Errorf("Mat is invalid")
	}

	if err := ValidateCoordinates(row, col, sm.mat.Rows(), sm.mat.Cols(), "SetUCharAt3"); err != nil {
		return err
	}

	if err := ValidateChannel(channel, sm.mat.Channels(), "SetUCharAt3"); err != nil {
		return err
	}

	sm.mat.SetUCharAt3(row, col, channel, value)
	return nil
}

// GetMat exposes the underlying gocv.Mat for read-only OpenCV calls.
func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

func (sm *Mat) ID() uint64 {
	return sm.id
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
