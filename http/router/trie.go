package router

import "sort"

// A trieNode is the position reached after consuming zero or more path
// segments. Literal children are keyed by their exact segment text;
// parameter children are kept sorted by ascending [ParamType].
type trieNode struct {
	literals map[string]*trieNode
	params   []*typedParam
	handlers map[Method]*RouteInfo
}

// A typedParam is a parameter edge hanging off a trieNode.
type typedParam struct {
	name  string
	ptype ParamType
	next  *trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{
		literals: make(map[string]*trieNode),
		handlers: make(map[Method]*RouteInfo),
	}
}

// child returns the node reached through the given pattern segment,
// creating the edge when absent. A typed parameter edge is shared by all
// registrations using the same type at this node; the capture name of the
// first registration sticks.
func (n *trieNode) child(segment string) *trieNode {
	parsed := parseSegment(segment)

	if !parsed.isParam {
		next, ok := n.literals[parsed.name]
		if !ok {
			next = newTrieNode()
			n.literals[parsed.name] = next
		}
		return next
	}

	i := sort.Search(len(n.params), func(i int) bool {
		return n.params[i].ptype >= parsed.ptype
	})

	if i < len(n.params) && n.params[i].ptype == parsed.ptype {
		return n.params[i].next
	}

	tp := &typedParam{name: parsed.name, ptype: parsed.ptype, next: newTrieNode()}
	n.params = append(n.params, nil)
	copy(n.params[i+1:], n.params[i:])
	n.params[i] = tp

	return tp.next
}

// handler resolves the route registered for the method,
// falling back to [ANY].
func (n *trieNode) handler(method Method) *RouteInfo {
	if route, ok := n.handlers[method]; ok {
		return route
	}
	if route, ok := n.handlers[ANY]; ok {
		return route
	}

	return nil
}
