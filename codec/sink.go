package codec

// FrameSink receives rendered frame pixel buffers in order, handing them
// off to an external muxer. This is the redesigned seam called for in the
// codec's design notes: the core never touches a media toolchain directly,
// only this small interface, so it can stream frames one at a time instead
// of buffering the whole file in memory.
type FrameSink interface {
	// Push hands one frame's RGBA pixel buffer to the sink, in order.
	Push(rgba []byte) error
	// Close finalizes the sink after the last frame has been pushed.
	Close() error
}

// FrameSource yields frame pixel buffers in order, standing in for an
// external demuxer. Next returns ok=false once the source is exhausted.
type FrameSource interface {
	Next() (rgba []byte, ok bool, err error)
}

// SliceSink collects pushed frames into an in-memory slice. It is the
// batch-mode sink used by tests and by callers who don't need streaming.
type SliceSink struct {
	Frames [][]byte
}

// Push implements FrameSink.
func (s *SliceSink) Push(rgba []byte) error {
	buf := make([]byte, len(rgba))
	copy(buf, rgba)
	s.Frames = append(s.Frames, buf)
	return nil
}

// Close implements FrameSink. It is a no-op for SliceSink.
func (s *SliceSink) Close() error { return nil }

// SliceSource replays a fixed slice of frames as a FrameSource.
type SliceSource struct {
	Frames [][]byte
	pos    int
}

// Next implements FrameSource.
func (s *SliceSource) Next() ([]byte, bool, error) {
	if s.pos >= len(s.Frames) {
		return nil, false, nil
	}
	f := s.Frames[s.pos]
	s.pos++
	return f, true, nil
}
