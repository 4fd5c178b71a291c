package embed

// DefaultEmbedFactory implements EmbedFactory interface
type DefaultEmbedFactory struct{}

// NewEmbedFactory creates a new DefaultEmbedFactory instance
func NewEmbedFactory() EmbedFactory {
	return &DefaultEmbedFactory{}
}

// CreateBasicEmbedBuilder creates a basic EmbedBuilder instance
func (f *DefaultEmbedFactory) CreateBasicEmbedBuilder() EmbedBuilder {
	return NewBasicEmbedBuilder()
}

// CreateBoosterEmbedBuilder creates a BoosterEmbedBuilder instance
func (f *DefaultEmbedFactory) CreateBoosterEmbedBuilder() BoosterEmbedBuilder {
	return NewBoosterEmbedBuilder()
}

var globalFactory EmbedFactory = NewEmbedFactory()

// CreateBasicEmbeds creates a basic EmbedBuilder using the global factory
func CreateBasicEmbeds() EmbedBuilder {
	return globalFactory.CreateBasicEmbedBuilder()
}

// CreateBoosterEmbeds creates a BoosterEmbedBuilder using the global factory
func CreateBoosterEmbeds() BoosterEmbedBuilder {
	return globalFactory.CreateBoosterEmbedBuilder()
}
