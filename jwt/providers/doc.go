/*
Package providers carries ready-made implementations of the jwt engine's
provider contracts: a [*KeyStore] crypto provider holding key material
in memory and persisting it as PEM files, and a [JSON] provider on
json-iterator.

The engine depends only on the interfaces; swap either out when the host
brings its own KMS or serializer.
*/
package providers
