package domain

import "context"

// ServicePort is the content store contract shared by every entry kind
type ServicePort[E Entry, I Input, P Patch] interface {
	Create(ctx context.Context, in I) (E, error)
	Read(ctx context.Context, q Query) ([]E, error)
	Update(ctx context.Context, locator string, p P) (E, error)
	Delete(ctx context.Context, locator string) (E, error)
}
