/*
Package weave defines the interfaces shared by the escrow packages: storage,
persistence, addresses, fractions and the logger carried in a context.
Look into this package to get a brief overview of the building blocks the
extensions under x/ are assembled from.

We pass context through context.Context between the service layer and the
extensions. There should exist two functions for every XYZ of type T that
we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) T
*/
package weave
