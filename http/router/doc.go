/*
Package router matches HTTP requests to handlers using a trie of path segments.

Routes are registered with [*Router.Handle] using patterns made of literal
segments and parameter segments. A parameter segment captures the matched
path segment under a name and can restrict what it accepts with a type:

	/users                          literal only
	/users/<id>                     generic capture
	/users/<id:int>/posts/<slug:string>  typed captures

Matching is deterministic. At every node an exact literal wins over any
parameter; parameters are tried in ascending type order (int, base64id,
string, uuid, float, generic) and the first validator accepting the segment
wins. Method lookup on the terminal node falls back to [ANY].

A [*Router] is mutated only through [*Router.Handle] and [*Router.Use].
Registration must complete before serving; afterwards concurrent calls to
[*Router.Match] are safe.
*/
package router
