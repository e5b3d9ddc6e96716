package message

import "github.com/kson-lang/kson/position"

// Sink collects diagnostics produced across the pipeline. Every stage
// (lexer, parser, indent validator, schema validator) appends to the same
// Sink rather than returning early, per the propagation policy: errors
// never abort a stage, they accumulate.
type Sink struct {
	messages []Message
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a Message to the sink.
func (s *Sink) Add(m Message) {
	s.messages = append(s.messages, m)
}

// Error appends an Error-severity Message built from kind, location and
// params.
func (s *Sink) Error(kind Kind, loc position.Location, params ...string) {
	s.Add(Message{Severity: Error, Kind: kind, Location: loc, Params: params})
}

// Warning appends a Warning-severity Message built from kind, location and
// params.
func (s *Sink) Warning(kind Kind, loc position.Location, params ...string) {
	s.Add(Message{Severity: Warning, Kind: kind, Location: loc, Params: params})
}

// Messages returns all collected messages in the order they were added.
func (s *Sink) Messages() []Message {
	return s.messages
}

// HasErrors reports whether any collected message has Error severity.
func (s *Sink) HasErrors() bool {
	for _, m := range s.messages {
		if m.Severity == Error {
			return true
		}
	}

	return false
}

// Len returns the number of collected messages.
func (s *Sink) Len() int {
	return len(s.messages)
}
