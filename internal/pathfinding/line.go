package pathfinding

// lineIterator walks the tiles of a 2D Bresenham line from start to end,
// both inclusive. Consecutive tiles differ by one king move.
type lineIterator struct {
	currentX, currentZ int
	targetX, targetZ   int
	deltaX, deltaZ     int
	stepX, stepZ       int
	err                int
	xDominant          bool
	started            bool
}

func newLineIterator(sx, sz, ex, ez int) *lineIterator {
	it := &lineIterator{
		currentX: sx, currentZ: sz,
		targetX: ex, targetZ: ez,
		deltaX: abs(ex - sx),
		deltaZ: abs(ez - sz),
		stepX:  1,
		stepZ:  1,
	}
	if ex < sx {
		it.stepX = -1
	}
	if ez < sz {
		it.stepZ = -1
	}

	it.xDominant = it.deltaX >= it.deltaZ
	if it.xDominant {
		it.err = it.deltaX / 2
	} else {
		it.err = it.deltaZ / 2
	}
	return it
}

// Next advances to the next tile. The first call yields the start tile;
// it returns false once the end tile has been yielded.
func (it *lineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.currentX == it.targetX && it.currentZ == it.targetZ {
		return false
	}

	if it.xDominant {
		it.currentX += it.stepX
		it.err += it.deltaZ
		if it.err >= it.deltaX {
			it.currentZ += it.stepZ
			it.err -= it.deltaX
		}
	} else {
		it.currentZ += it.stepZ
		it.err += it.deltaX
		if it.err >= it.deltaZ {
			it.currentX += it.stepX
			it.err -= it.deltaZ
		}
	}
	return true
}

func (it *lineIterator) X() int { return it.currentX }

func (it *lineIterator) Z() int { return it.currentZ }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
