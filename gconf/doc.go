/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object, stored under the
"_c:<package name>" key. The configuration is loaded from the "conf" section
of the genesis file by InitConfig and read back with Load.

A configuration is validated every time before it is written.
*/
package gconf
