package step

import "context"

type instanceKey struct{}

// WithInstance tags ctx with the workflow instance the steps belong to. The
// executor stamps it onto audit events.
func WithInstance(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, instanceKey{}, id)
}

// InstanceFromContext returns the instance id set by WithInstance, or "".
func InstanceFromContext(ctx context.Context) string {
	id, _ := ctx.Value(instanceKey{}).(string)
	return id
}
