package viewer

import (
	"context"

	"github.com/matzehuels/modelviewer/pkg/model"
)

// ResourceContainer owns the resources loaded for one generation.
// [model.ResourceSet] is the production implementation.
type ResourceContainer interface {
	Load(ctx context.Context, location string, opts model.LoadOptions) (*model.Resource, error)
	Unload() error
}

// ContainerFactory creates the container for one generation. Containers are
// never reused.
type ContainerFactory func() ResourceContainer

// ResourceSetFactory returns a factory of resource sets reading through opener.
func ResourceSetFactory(opener model.Opener) ContainerFactory {
	return func() ResourceContainer {
		return model.NewResourceSet(model.WithOpener(opener))
	}
}

var _ ResourceContainer = (*model.ResourceSet)(nil)
