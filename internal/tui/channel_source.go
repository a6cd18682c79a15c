package tui

// ChannelSource adapts a Go channel of Event to EventSource, the shape
// cmd/chessdb's `watch` command feeds from a goroutine draining
// internal/reader chunks.
type ChannelSource struct {
	ch <-chan Event
}

// NewChannelSource wraps ch. The sending side should close ch when ingest
// finishes, which drives the dashboard into its "done" state.
func NewChannelSource(ch <-chan Event) ChannelSource {
	return ChannelSource{ch: ch}
}

func (s ChannelSource) Next() (Event, bool) {
	ev, ok := <-s.ch
	return ev, ok
}
