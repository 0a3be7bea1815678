package modem_test

import (
	"i4.energy/across/cscctl/at"
	"i4.energy/across/cscctl/modem"
)

// MockSequenceBuilder collects the transport calls of consecutive exchanges
// so they can be passed to gomock.InOrder.
type MockSequenceBuilder struct {
	transport *modem.MockTransport
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

// Exchange expects cmd to be written and answers it with chunks, one per
// poll, followed by the quiet read that ends the exchange.
func (b *MockSequenceBuilder) Exchange(cmd string, chunks ...string) *MockSequenceBuilder {
	wire := []byte(cmd + at.LF)
	b.calls = append(b.calls,
		b.transport.EXPECT().ResetBuffers().Return(nil),
		b.transport.EXPECT().Write(wire).Return(len(wire), nil),
	)
	for _, chunk := range chunks {
		b.calls = append(b.calls, b.transport.EXPECT().ReadAvailable().Return([]byte(chunk), nil))
	}
	if len(chunks) > 0 {
		b.calls = append(b.calls, b.transport.EXPECT().ReadAvailable().Return(nil, nil))
	}
	return b
}

// Silent expects cmd to be written and never answered.
func (b *MockSequenceBuilder) Silent(cmd string, polls int) *MockSequenceBuilder {
	wire := []byte(cmd + at.LF)
	b.calls = append(b.calls,
		b.transport.EXPECT().ResetBuffers().Return(nil),
		b.transport.EXPECT().Write(wire).Return(len(wire), nil),
		b.transport.EXPECT().ReadAvailable().Return(nil, nil).Times(polls),
	)
	return b
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
