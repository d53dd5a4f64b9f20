package memory

import (
	"github.com/mnemon-dev/mnemon/pkg/domain/interfaces"
)

// Memory is an in-process repository for development and tests. It is
// safe for concurrent use by multiple in-flight turns.
type Memory struct {
	exchange *exchangeRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		exchange: newExchangeRepository(),
	}
}

func (m *Memory) Exchange() interfaces.ExchangeRepository {
	return m.exchange
}

func (m *Memory) Close() error {
	return nil
}
