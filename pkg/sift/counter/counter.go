package counter

// Counter holds the per-class occurrence counts for one token.
type Counter struct {
	Spam uint32
	Ham  uint32
}

// Pack encodes the counter into a single uint64 with spam in the high
// 32 bits and ham in the low 32 bits. Counts past 2^32-1 per class wrap
// silently; that is the hard limit of the packed form.
func (c Counter) Pack() uint64 {
	return uint64(c.Spam)<<32 | uint64(c.Ham)
}

// Unpack decodes a value produced by Pack.
func Unpack(v uint64) Counter {
	return Counter{
		Spam: uint32(v >> 32),
		Ham:  uint32(v),
	}
}

// Total returns the combined occurrence count across both classes.
func (c Counter) Total() uint32 {
	return c.Spam + c.Ham
}
