package mapper

import "fmt"

// PolicyBuilder loads generator policies from literal content.
type PolicyBuilder struct {
	factory PolicyFactory
}

// NewPolicyBuilder creates a PolicyBuilder.
func NewPolicyBuilder(factory PolicyFactory) *PolicyBuilder {
	return &PolicyBuilder{factory: factory}
}

// Build loads content with a UUID source sized by uuidSize. uuidSize is passed
// through unchecked; see NewUUIDSource for its meaning.
func (b *PolicyBuilder) Build(content string, uuidSize int) (Generator, error) {
	res := StringResource(content)
	defer res.Close()
	gen, err := b.factory.LoadPolicy(res, NewUUIDSource(uuidSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return gen, nil
}
