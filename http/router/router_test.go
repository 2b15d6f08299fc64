package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/waypoint/http/router"
)

// paramRecorder collects captures handed over by Match.
type paramRecorder map[string]string

func (pr paramRecorder) SetParam(name, value string) { pr[name] = value }

func TestRouterMatchLiteralBeatsParam(t *testing.T) {
	// Arrange
	r := router.New()
	r.Handle(router.GET, "/users/<id:int>", func(ctx router.Ctx) {})
	expected := r.Handle(router.GET, "/users/me", func(ctx router.Ctx) {})
	pr := make(paramRecorder)

	// Act
	actual := r.Match(router.GET, "/users/me", pr)

	// Assert
	require.Same(t, expected, actual)
	require.Empty(t, pr)
}

func TestRouterMatchTypePriority(t *testing.T) {
	// Arrange
	r := router.New()
	intRoute := r.Handle(router.GET, "/files/<id:int>", func(ctx router.Ctx) {})
	strRoute := r.Handle(router.GET, "/files/<name:string>", func(ctx router.Ctx) {})
	r.Handle(router.GET, "/files/<ref:uuid>", func(ctx router.Ctx) {})

	tcs := []struct {
		name     string
		segment  string
		expected *router.RouteInfo
		capture  string
	}{
		{"digits take int", "123", intRoute, "id"},
		{"text takes string", "report.pdf", strRoute, "name"},
		// string outranks uuid, so even a well-formed uuid lands there
		{"uuid takes string", "550e8400-e29b-41d4-a716-446655440000", strRoute, "name"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			pr := make(paramRecorder)
			actual := r.Match(router.GET, "/files/"+tc.segment, pr)

			// Assert
			require.Same(t, tc.expected, actual)
			require.Equal(t, tc.segment, pr[tc.capture])
		})
	}
}

func TestRouterMatchAnyFallback(t *testing.T) {
	// Arrange
	r := router.New()
	anyRoute := r.Handle(router.ANY, "/health", func(ctx router.Ctx) {})
	getRoute := r.Handle(router.GET, "/health", func(ctx router.Ctx) {})

	// Act + Assert
	require.Same(t, getRoute, r.Match(router.GET, "/health", make(paramRecorder)))
	require.Same(t, anyRoute, r.Match(router.POST, "/health", make(paramRecorder)))
	require.Same(t, anyRoute, r.Match(router.DELETE, "/health", make(paramRecorder)))
}

func TestRouterMatchMiss(t *testing.T) {
	// Arrange
	r := router.New()
	r.Handle(router.GET, "/users/<id:int>/orders", func(ctx router.Ctx) {})
	pr := make(paramRecorder)

	// Act
	actual := r.Match(router.GET, "/users/42/invoices", pr)

	// Assert
	require.Nil(t, actual)
	// captures recorded before the failing segment stay put
	require.Equal(t, "42", pr["id"])
}

func TestRouterMatchMethodMiss(t *testing.T) {
	// Arrange
	r := router.New()
	r.Handle(router.GET, "/users", func(ctx router.Ctx) {})

	// Act + Assert
	require.Nil(t, r.Match(router.POST, "/users", make(paramRecorder)))
}

func TestRouterMatchRootAndTrailingSlash(t *testing.T) {
	// Arrange
	r := router.New()
	root := r.Handle(router.GET, "/", func(ctx router.Ctx) {})
	about := r.Handle(router.GET, "/about", func(ctx router.Ctx) {})

	// Act + Assert
	require.Same(t, root, r.Match(router.GET, "/", make(paramRecorder)))
	require.Same(t, about, r.Match(router.GET, "/about/", make(paramRecorder)))
	require.Same(t, about, r.Match(router.GET, "about", make(paramRecorder)))
}

func TestRouterHandleReplacesSameMethod(t *testing.T) {
	// Arrange
	r := router.New()
	var called string
	r.Handle(router.GET, "/users", func(ctx router.Ctx) { called = "first" })
	r.Handle(router.GET, "/users", func(ctx router.Ctx) { called = "second" })

	// Act
	route := r.Match(router.GET, "/users", make(paramRecorder))
	require.NotNil(t, route)
	route.Handler(nil)

	// Assert
	require.Equal(t, "second", called)
}

func TestRouterFirstCaptureNameSticks(t *testing.T) {
	// Arrange
	r := router.New()
	r.Handle(router.GET, "/users/<id:int>", func(ctx router.Ctx) {})
	r.Handle(router.POST, "/users/<userID:int>", func(ctx router.Ctx) {})
	pr := make(paramRecorder)

	// Act
	actual := r.Match(router.POST, "/users/7", pr)

	// Assert
	require.NotNil(t, actual)
	require.Equal(t, "7", pr["id"])
	require.NotContains(t, pr, "userID")
}

func TestRouterExecuteOrder(t *testing.T) {
	// Arrange
	r := router.New()
	var order []string
	step := func(name string) router.Middleware {
		return func(ctx router.Ctx, next router.Next) {
			order = append(order, name)
			next()
		}
	}

	r.Use(step("global-1"), step("global-2"))
	route := r.Handle(router.GET, "/users", func(ctx router.Ctx) {
		order = append(order, "handler")
	})
	route.Use(step("route-1"), step("route-2"))

	// Act
	r.Execute(route, make(paramRecorder))

	// Assert
	require.Equal(t, []string{"global-1", "global-2", "route-1", "route-2", "handler"}, order)
}

func TestRouterExecuteShortCircuit(t *testing.T) {
	// Arrange
	r := router.New()
	var order []string
	r.Use(func(ctx router.Ctx, next router.Next) {
		order = append(order, "gate")
	})
	route := r.Handle(router.GET, "/users", func(ctx router.Ctx) {
		order = append(order, "handler")
	})

	// Act
	r.Execute(route, make(paramRecorder))

	// Assert
	require.Equal(t, []string{"gate"}, order)
}

func TestRouterMatchNested(t *testing.T) {
	// Arrange
	r := router.New()
	expected := r.Handle(router.GET, "/api/v1/users/<id:int>/orders/<ref:uuid>", func(ctx router.Ctx) {})
	pr := make(paramRecorder)

	// Act
	actual := r.Match(router.GET, "/api/v1/users/42/orders/550e8400-e29b-41d4-a716-446655440000", pr)

	// Assert
	require.Same(t, expected, actual)
	require.Equal(t, "42", pr["id"])
	require.Equal(t, "550e8400-e29b-41d4-a716-446655440000", pr["ref"])
}
