//go:build windows

package screen

// Windows has no standard screenshot CLI; the native source is the
// in-process robotgo backend, which needs no scratch directory.
func NewNative() (Source, error) {
	return NewRobotgo(), nil
}
