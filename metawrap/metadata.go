package metawrap

// Pair is one decoded metadata line.
type Pair struct {
	Key   string
	Value string
}

// Collector accumulates metadata pairs in file order. Its Sink method plugs
// directly into NewStream.
type Collector struct {
	pairs []Pair
}

func NewCollector() *Collector {
	return &Collector{}
}

// Sink returns a SinkFunc appending into the collector.
func (c *Collector) Sink() SinkFunc {
	return func(key, value string) {
		c.pairs = append(c.pairs, Pair{Key: key, Value: value})
	}
}

// Pairs returns the collected pairs in the order they appeared.
func (c *Collector) Pairs() []Pair {
	return c.pairs
}

// Get returns the value for key. When the header repeats a key the last
// occurrence wins.
func (c *Collector) Get(key string) (string, bool) {
	for i := len(c.pairs) - 1; i >= 0; i-- {
		if c.pairs[i].Key == key {
			return c.pairs[i].Value, true
		}
	}
	return "", false
}

// Len returns the number of collected pairs.
func (c *Collector) Len() int {
	return len(c.pairs)
}
