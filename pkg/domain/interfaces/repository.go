package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Exchange() ExchangeRepository

	Close() error
}
