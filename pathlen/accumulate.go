package pathlen

import "errors"

// Accumulate zeroes dst and adds the weighted length of every segment of r to it.
// A ray that never enters the geometry leaves dst all zero and returns nil.
// Segments whose code is not in dst are added as new entries.
func Accumulate(w *Walker, r Ray, dst PathLengths) error {
	dst.SetAllToZero()
	err := w.ForEachSegment(r, func(seg Segment) error {
		dst.AddPathLength(seg.Code, seg.Weighted())
		return nil
	})
	if errors.Is(err, ErrNeverEntered) {
		return nil
	}
	return err
}
