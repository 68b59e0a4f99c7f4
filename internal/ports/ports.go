package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Lookups
	PlaceProvider   PlaceProvider
	WeatherProvider WeatherProviderManager
	AirportProvider AirportProvider
	FlightProvider  FlightProvider
	LookupCache     CacheProvider
	CacheMetrics    CacheMetrics

	// Planner storage
	UserStores UserStoreFactory
	Store      KeyValueStore

	// Auth
	UserRepository UserRepository
	PasswordHasher PasswordHasher
	TokenManager   TokenManager

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsRecorder
	Database       interface{}
}
