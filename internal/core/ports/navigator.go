package ports

// Navigator is the presentation surface the transport redirects on Unauthorized responses.
//
//go:generate mockgen -source=navigator.go -destination=mocks/mock_navigator.go -package=mocks
type Navigator interface {
	// CurrentPath returns the path of the surface the user is on.
	CurrentPath() string
	// SetCurrentPath records the surface the user is on without any navigation side effect.
	SetCurrentPath(path string)
	// Navigate moves the user to path.
	Navigate(path string)
}
