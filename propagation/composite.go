package propagation

import "context"

// Composite chains several propagators: Inject invokes each in order,
// Extract threads the context left-to-right (§4.9).
type Composite struct {
	propagators []TextMapPropagator
}

var _ TextMapPropagator = Composite{}

func NewComposite(propagators ...TextMapPropagator) Composite {
	return Composite{propagators: propagators}
}

func (c Composite) Inject(ctx context.Context, carrier TextMapCarrier) {
	for _, p := range c.propagators {
		p.Inject(ctx, carrier)
	}
}

func (c Composite) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	for _, p := range c.propagators {
		ctx = p.Extract(ctx, carrier)
	}
	return ctx
}

func (c Composite) Fields() []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, p := range c.propagators {
		for _, f := range p.Fields() {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				fields = append(fields, f)
			}
		}
	}
	return fields
}
