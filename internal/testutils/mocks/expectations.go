// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	compendiummock "github.com/KirkDiggler/simulacrum/internal/compendium/mock"
	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
)

// ExpectResolve sets up a single resolution of uuid
func ExpectResolve(
	mockResolver *compendiummock.MockResolver,
	uuid string, item *simulacrum.Item, err error,
) *gomock.Call {
	return mockResolver.EXPECT().
		Resolve(gomock.Any(), uuid).
		Return(item, err)
}

// ExpectResolveFrom serves any number of resolutions from a fixed table.
// Identifiers missing from the table resolve to errors.NotFound. Each call
// returns a fresh copy, the way the real resolver does.
func ExpectResolveFrom(
	mockResolver *compendiummock.MockResolver,
	table map[string]*simulacrum.Item,
) *gomock.Call {
	return mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, uuid string) (*simulacrum.Item, error) {
			item, ok := table[uuid]
			if !ok {
				return nil, errors.NotFoundf("no document %s", uuid)
			}
			return item.Clone(), nil
		}).
		AnyTimes()
}
