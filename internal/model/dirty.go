package model

// Dirty is the invalidation level of a tree. Levels are ordered so that a
// stale structure always implies stale geometry.
type Dirty int

const (
	Clean Dirty = iota
	GeometryDirty
	StructureDirty
)

// String returns a human-readable level name
func (d Dirty) String() string {
	switch d {
	case Clean:
		return "clean"
	case GeometryDirty:
		return "geometry"
	case StructureDirty:
		return "structure"
	default:
		return "unknown"
	}
}

// Mark raises the level to at least level
func (d *Dirty) Mark(level Dirty) {
	if level > *d {
		*d = level
	}
}

// Lower drops the level to at most level
func (d *Dirty) Lower(level Dirty) {
	if level < *d {
		*d = level
	}
}

func (d Dirty) Structure() bool { return d >= StructureDirty }
func (d Dirty) Geometry() bool  { return d >= GeometryDirty }
