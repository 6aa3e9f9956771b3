package userapi

// Capabilities lists the optional operations a backend exposes.
type Capabilities struct {
	Update         bool
	Delete         bool
	AdvancedSearch bool
}

// Backend identifies one endpoint group of the user API.
type Backend struct {
	// Name labels log lines and metrics.
	Name string
	// Prefix is the path below the base URL, e.g. "/users".
	Prefix string
	Caps   Capabilities
}

// Backends served by the user API. Both accept the same shared operations;
// only the MyBatis group supports update, delete and advanced search.
var (
	JPA = Backend{
		Name:   "jpa",
		Prefix: "/users",
	}
	MyBatis = Backend{
		Name:   "mybatis",
		Prefix: "/mybatis/users",
		Caps: Capabilities{
			Update:         true,
			Delete:         true,
			AdvancedSearch: true,
		},
	}
)

// BackendByName returns the predefined backend with the given name.
func BackendByName(name string) (Backend, bool) {
	switch name {
	case JPA.Name:
		return JPA, true
	case MyBatis.Name:
		return MyBatis, true
	default:
		return Backend{}, false
	}
}
