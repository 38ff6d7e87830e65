/*
Package errors implements the error handling used across the escrow
packages.

Every error returned by the application should wrap one of the root
errors declared with Register. A root error carries a unique code that
a client can use to tell error kinds apart, and the Is method unwraps
any chain built with Wrap, Wrapf or Field to find the root.

Extensions declare their own root errors with Register(code, description).
Codes 1-99 are reserved for this package.

Stack traces are attached once, at the innermost Wrap. Use fmt verbs to
control how much of it is printed:

	%s is just the error message
	%+v is the full stack trace

Validation of a structure usually produces several problems at once. Use
Field to tag an error with the name of the attribute it belongs to and
Append to club them together. FieldErrors extracts errors for a given
field name, which is what tests usually want to assert.
*/
package errors
