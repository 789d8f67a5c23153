package solver

// interval is a half-open busy period [start, end) on one platform. The end
// already includes the dwell buffer.
type interval struct {
	start, end int
}

// timeline tracks the busy intervals of a single platform in start order.
type timeline struct {
	busy []interval
}

// earliestStart returns the first start >= release where a busy period of
// busyLen minutes fits without overlapping existing intervals.
func (tl *timeline) earliestStart(release, busyLen int) int {
	start := release
	for _, iv := range tl.busy {
		if start+busyLen <= iv.start {
			break
		}
		if iv.end > start {
			start = iv.end
		}
	}
	return start
}

// insert adds the busy period keeping the slice sorted and returns the
// insertion index so the caller can undo it.
func (tl *timeline) insert(start, busyLen int) int {
	iv := interval{start: start, end: start + busyLen}
	pos := len(tl.busy)
	for i, b := range tl.busy {
		if iv.start < b.start {
			pos = i
			break
		}
	}
	tl.busy = append(tl.busy, interval{})
	copy(tl.busy[pos+1:], tl.busy[pos:])
	tl.busy[pos] = iv
	return pos
}

// remove undoes an insert at the given index.
func (tl *timeline) remove(pos int) {
	tl.busy = append(tl.busy[:pos], tl.busy[pos+1:]...)
}

// newTimelines allocates one timeline per platform (index 0 unused, platforms
// are 1-based).
func newTimelines(platforms int) []timeline {
	return make([]timeline, platforms+1)
}
