package registry

import "github.com/TheBitDrifter/mask"

// maxKinds bounds the declared component plus tag kinds to the mask width,
// so every kind's bit position is markable.
const maxKinds = mask.MaxBits

// defaultLinearSearchThreshold is the store-to-candidate size ratio below
// which cursor columns advance by linear scan instead of binary search.
const defaultLinearSearchThreshold = 64

type config struct {
	components            []Kind
	tags                  []Kind
	sink                  EventSink
	errorCallback         ErrorCallback
	linearSearchThreshold int
}

// Option configures a registry at construction.
type Option func(*config)

// WithComponents declares the registry's component kinds.
func WithComponents(kinds ...Kind) Option {
	return func(c *config) {
		c.components = append(c.components, kinds...)
	}
}

// WithTags declares the registry's tag kinds. Tag kinds must be disjoint
// from component kinds.
func WithTags(kinds ...Kind) Option {
	return func(c *config) {
		c.tags = append(c.tags, kinds...)
	}
}

// WithEventSink attaches an event sink from the start.
func WithEventSink(sink EventSink) Option {
	return func(c *config) {
		c.sink = sink
	}
}

// WithErrorCallback switches the registry to callback error delivery:
// failures invoke the callback and then panic instead of returning an
// error. The mode is fixed for the registry's lifetime.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(c *config) {
		c.errorCallback = cb
	}
}

// WithLinearSearchThreshold overrides the cursor's linear-vs-binary
// advancement threshold. The default is 64.
func WithLinearSearchThreshold(n int) Option {
	return func(c *config) {
		c.linearSearchThreshold = n
	}
}
