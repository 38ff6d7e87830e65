/*
Package migration provides tooling necessary for working with schema versioned
models.

Every model carries metadata with a schema version. An extension registers a
migration function for each schema version of a model in its package `init`.
The first version must be registered as well, usually with NoModification:

	func init() {
	    migration.MustRegister(1, &MyModel{}, migration.NoModification)
	}

Wrap the extension bucket with NewModelBucket so that every model loaded from
or written to the store is upgraded to the highest registered version first.
*/
package migration
