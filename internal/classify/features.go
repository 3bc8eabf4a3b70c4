package classify

import "sort"

// Features is an immutable record of named numeric and categorical attributes.
// The zero value is an empty record.
type Features struct {
	values map[string]float64
	labels map[string][]string
}

// NewFeatures copies the supplied attributes into a read-only record.
func NewFeatures(values map[string]float64, labels map[string][]string) Features {
	f := Features{
		values: make(map[string]float64, len(values)),
		labels: make(map[string][]string, len(labels)),
	}
	for k, v := range values {
		f.values[k] = v
	}
	for k, v := range labels {
		f.labels[k] = append([]string(nil), v...)
	}
	return f
}

// Value returns the numeric attribute, or 0 when absent.
func (f Features) Value(name string) float64 {
	return f.values[name]
}

// Has reports whether a numeric attribute is present.
func (f Features) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Labels returns a copy of the categorical attribute.
func (f Features) Labels(name string) []string {
	return append([]string(nil), f.labels[name]...)
}

// Names lists numeric attribute names in sorted order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
