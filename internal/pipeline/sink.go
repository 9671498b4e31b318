package pipeline

// ChannelSink hands scan and scoring events to a reader on the other end of
// Ch, typically the terminal progress view. Sends block while the channel is
// full; a sink without a channel discards everything.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// FuncSink lets a plain function observe events, e.g. a tracer hook in tests.
type FuncSink func(Event)

func (f FuncSink) OnEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}
