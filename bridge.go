package logward

// Legacy registration bridge.
//
// Older applications configure logging through named static entry points
// instead of composing bundles themselves: ConfigureRoot at the application
// root, ConfigureCategory in nested subsystems. Both return the same opaque
// bundles as the modern surface, so the two styles mix freely; the bridge is
// a naming shim, not a second implementation.

// ConfigureRoot builds the root logging bundle from a declarative Config and
// optional feature descriptors. It is the legacy equivalent of
// Provide(FromConfig(config), WithFeatures(features...)).
func ConfigureRoot(config Config, features ...Feature) (*Bundle, error) {
	return Provide(FromConfig(config), WithFeatures(features...))
}

// ConfigureCategory builds a bundle that binds an appender to a category on
// the nearest logger. It is the legacy equivalent of ProvideCategory and is
// intended to be applied in a nested scope, after the root bundle.
func ConfigureCategory(category string, appender Appender) *Bundle {
	return ProvideCategory(category, appender)
}
