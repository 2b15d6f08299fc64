package waypoint

type Key string

const (
	// CurrentClaimsKey stashes the verified JWT claims for a request.
	CurrentClaimsKey Key = "CurrentClaimsKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by waypoint.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "waypoint context key: " + string(k)
}
